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

// Package parse turns classified message text into typed records carrying
// the fields the balance engine needs. One record type exists per accounting
// semantics rather than per message format, so the engine switches on three
// concrete types instead of eight formats.
package parse

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/shopspring/decimal"
)

// Record is the typed result of parsing a classified message. The concrete
// type determines the accounting semantics: snapshot delta, additive
// accrual, or fixed per-winner reward.
type Record interface {
	isRecord()
}

// ProfileSnapshot reports a player's full in-game balance at one moment.
// The ledger effect is the change since the previous snapshot, not the
// snapshot value itself.
type ProfileSnapshot struct {
	Game   common.Game
	Player string
	Amount decimal.Decimal
}

func (*ProfileSnapshot) isRecord() {}

func (p ProfileSnapshot) String() string {
	return fmt.Sprintf(
		"ProfileSnapshot< game = %s, player = %s, amount = %s >",
		p.Game,
		p.Player,
		p.Amount,
	)
}

// Accrual credits a specific in-game amount to a player
type Accrual struct {
	Game   common.Game
	Player string
	Amount decimal.Decimal
}

func (*Accrual) isRecord() {}

func (a Accrual) String() string {
	return fmt.Sprintf(
		"Accrual< game = %s, player = %s, amount = %s >",
		a.Game,
		a.Player,
		a.Amount,
	)
}

// GameEnd lists the winners of a finished round, in announcement order,
// each to be credited the game's fixed per-winner reward. The list may be
// empty.
type GameEnd struct {
	Game    common.Game
	Winners []string
	Reward  decimal.Decimal
}

func (*GameEnd) isRecord() {}

func (g GameEnd) String() string {
	return fmt.Sprintf(
		"GameEnd< game = %s, winners = [%s], reward = %s >",
		g.Game,
		strings.Join(g.Winners, ", "),
		g.Reward,
	)
}

// Error reports that a classified message did not carry the fields its
// format requires. Retrying the same text cannot succeed; the format has
// drifted and the parser needs fixing.
type Error struct {
	Label string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse %s message: %s", e.Label, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
