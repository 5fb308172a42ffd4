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

package fishing

import (
	"testing"
)

func TestParseCatch(t *testing.T) {
	catch, err := ParseCatch(
		"🎣 [Рыбалка] 🎣\nРыбак: Carol\nУлов: Окунь\nМонеты: +25",
	)
	if err != nil {
		t.Fatalf("failed to parse catch: %v", err)
	}
	if catch.Player != "Carol" {
		t.Errorf("expected player 'Carol', got '%s'", catch.Player)
	}
	if catch.Coins.String() != "25" {
		t.Errorf("expected coins 25, got %s", catch.Coins)
	}
}

func TestParseCatchTrimsName(t *testing.T) {
	catch, err := ParseCatch("🎣 [Рыбалка] 🎣\nРыбак:  Old Salt \nМонеты: +7")
	if err != nil {
		t.Fatalf("failed to parse catch: %v", err)
	}
	if catch.Player != "Old Salt" {
		t.Errorf("expected player 'Old Salt', got '%s'", catch.Player)
	}
}

func TestParseCatchMissingCoins(t *testing.T) {
	if _, err := ParseCatch("🎣 [Рыбалка] 🎣\nРыбак: Carol"); err == nil {
		t.Error("expected error for missing coins")
	}
}

func TestParseCatchUnsignedCoins(t *testing.T) {
	if _, err := ParseCatch("🎣 [Рыбалка] 🎣\nРыбак: Carol\nМонеты: 25"); err == nil {
		t.Error("expected error for coins without plus sign")
	}
}

func TestParseCatchMissingPlayer(t *testing.T) {
	if _, err := ParseCatch("🎣 [Рыбалка] 🎣\nМонеты: +25"); err == nil {
		t.Error("expected error for missing player name")
	}
}
