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

package common

import (
	"testing"
)

func TestGameKnown(t *testing.T) {
	for _, game := range Games() {
		if !game.Known() {
			t.Errorf("expected game %q to be known", game)
		}
	}

	unknown := Game("Chess Club")
	if unknown.Known() {
		t.Errorf("expected game %q to be unknown", unknown)
	}
}

func TestGamesStableOrder(t *testing.T) {
	first := Games()
	second := Games()
	if len(first) != len(second) {
		t.Fatalf("expected stable game count, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf(
				"expected stable ordering at index %d, got %q and %q",
				i,
				first[i],
				second[i],
			)
		}
	}
}

func TestWinReward(t *testing.T) {
	if !WinReward(GameTrueMafia).Equal(TrueMafiaWinReward) {
		t.Errorf(
			"expected True Mafia reward %s, got %s",
			TrueMafiaWinReward,
			WinReward(GameTrueMafia),
		)
	}
	if !WinReward(GameBunkerRP).Equal(BunkerRPWinReward) {
		t.Errorf(
			"expected Bunker RP reward %s, got %s",
			BunkerRPWinReward,
			WinReward(GameBunkerRP),
		)
	}
	if !WinReward(GameGDCards).IsZero() {
		t.Errorf(
			"expected zero reward for a game without game-end messages, got %s",
			WinReward(GameGDCards),
		)
	}
}
