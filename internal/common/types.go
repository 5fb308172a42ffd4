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

// Package common provides shared types used across multiple packages
package common

import (
	"github.com/shopspring/decimal"
)

// MessageIDScheme names how message IDs are derived from raw text and
// timestamp. Changing the derivation without migrating the processed-message
// set breaks duplicate detection, so the scheme is versioned and checked
// against the store at startup.
const MessageIDScheme = "sha256/v1"

// Game identifies one of the external game bots whose messages the engine
// understands. The value doubles as the key in the coefficient configuration
// and in the per-game balance rows, so the strings are load-bearing and must
// not change.
type Game string

const (
	GameGDCards       Game = "GD Cards"
	GameShmalala      Game = "Shmalala"
	GameShmalalaKarma Game = "Shmalala Karma"
	GameTrueMafia     Game = "True Mafia"
	GameBunkerRP      Game = "Bunker RP"
)

// Games returns every game the engine handles, in a stable order
func Games() []Game {
	return []Game{
		GameGDCards,
		GameShmalala,
		GameShmalalaKarma,
		GameTrueMafia,
		GameBunkerRP,
	}
}

// Known reports whether g is one of the handled games
func (g Game) Known() bool {
	for _, game := range Games() {
		if g == game {
			return true
		}
	}
	return false
}

// String returns the game identifier
func (g Game) String() string {
	return string(g)
}

// Fixed per-winner rewards credited by game-end messages. These are engine
// constants rather than configuration: the source bots pay a flat amount per
// winner and the coefficient mapping already covers per-game tuning.
var (
	TrueMafiaWinReward = decimal.NewFromInt(10)
	BunkerRPWinReward  = decimal.NewFromInt(30)
)

// WinReward returns the fixed per-winner reward for a game-end message from
// the given game, or a zero decimal for games without game-end messages.
func WinReward(game Game) decimal.Decimal {
	switch game {
	case GameTrueMafia:
		return TrueMafiaWinReward
	case GameBunkerRP:
		return BunkerRPWinReward
	}
	return decimal.Zero
}
