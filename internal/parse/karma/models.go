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

// Package karma provides message parsing for Shmalala karma likes.
package karma

import (
	"fmt"
)

// Like is the parsed form of a karma like. Each like credits exactly one
// karma point to the named player.
type Like struct {
	Player string
}

func (l Like) String() string {
	return fmt.Sprintf("Like< player = %s >", l.Player)
}
