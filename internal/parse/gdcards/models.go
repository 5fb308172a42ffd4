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

// Package gdcards provides message parsing for the GD Cards game bot.
package gdcards

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Profile is the parsed form of a GD Cards profile message. Orbs is the
// player's full in-game balance at the time the message was produced, not a
// change.
type Profile struct {
	Player string
	Orbs   decimal.Decimal
}

func (p Profile) String() string {
	return fmt.Sprintf(
		"Profile< player = %s, orbs = %s >",
		p.Player,
		p.Orbs,
	)
}

// NewCard is the parsed form of a new-card announcement. Points is the
// amount credited by the card draw.
type NewCard struct {
	Player string
	Points decimal.Decimal
}

func (n NewCard) String() string {
	return fmt.Sprintf(
		"NewCard< player = %s, points = %s >",
		n.Player,
		n.Points,
	)
}
