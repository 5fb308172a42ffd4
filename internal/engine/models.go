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
	"time"

	"github.com/blinklabs-io/bankbot/internal/ledger"
)

// BalanceUpdate is the notification published after a message commits. It
// carries the audit entries for that message's balance changes, so one
// update always describes one atomically applied message.
type BalanceUpdate struct {
	MessageID string         `json:"messageId"`
	Label     string         `json:"label"`
	Entries   []ledger.Entry `json:"entries"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewBalanceUpdate creates a BalanceUpdate for one committed message
func NewBalanceUpdate(
	messageID string,
	label string,
	entries []ledger.Entry,
) *BalanceUpdate {
	return &BalanceUpdate{
		MessageID: messageID,
		Label:     label,
		Entries:   entries,
		Timestamp: time.Now().UTC(),
	}
}

// String returns a human-readable representation
func (u BalanceUpdate) String() string {
	idDisplay := u.MessageID
	if len(idDisplay) > 16 {
		idDisplay = idDisplay[:16] + "..."
	}
	return fmt.Sprintf(
		"Update[%s] %s: %d entries",
		idDisplay,
		u.Label,
		len(u.Entries),
	)
}
