// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"fmt"
)

// ProcessErrorKind partitions process failures by what the caller should do
// next: fix the input or parser, fix the configuration, retry, or nothing.
type ProcessErrorKind int

const (
	ParseFailed ProcessErrorKind = iota
	UnknownGame
	StorageFailed
	Cancelled
)

func (k ProcessErrorKind) String() string {
	switch k {
	case ParseFailed:
		return "parse_failed"
	case UnknownGame:
		return "unknown_game"
	case StorageFailed:
		return "storage_failed"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// ProcessError is the typed failure returned by Process. The message is not
// marked processed on any error path, so retryable failures can be replayed
// with the same text and timestamp.
type ProcessError struct {
	Kind      ProcessErrorKind
	MessageID string
	Err       error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Retryable reports whether resubmitting the same message can succeed.
// Parse and configuration failures are deterministic and need a code or
// config fix first.
func (e *ProcessError) Retryable() bool {
	return e.Kind == StorageFailed || e.Kind == Cancelled
}
