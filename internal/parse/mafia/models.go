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

// Package mafia provides message parsing for the True Mafia game bot.
package mafia

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Profile is the parsed form of a True Mafia profile message. Money is the
// player's full in-game balance, not a change.
type Profile struct {
	Player string
	Money  decimal.Decimal
}

func (p Profile) String() string {
	return fmt.Sprintf(
		"Profile< player = %s, money = %s >",
		p.Player,
		p.Money,
	)
}

// GameEnd is the parsed form of a game summary. Winners preserves the order
// the bot listed them in; it may be empty when nobody won.
type GameEnd struct {
	Winners []string
}

func (g GameEnd) String() string {
	return fmt.Sprintf(
		"GameEnd< winners = [%s] >",
		strings.Join(g.Winners, ", "),
	)
}
