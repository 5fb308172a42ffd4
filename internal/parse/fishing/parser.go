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
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	catchPlayerRe = regexp.MustCompile(`Рыбак:[ \t]*([^\n]+)`)
	catchCoinsRe  = regexp.MustCompile(`Монеты:[ \t]*\+(\d+)`)
)

// ParseCatch extracts the player name and credited coins from a fishing
// report
func ParseCatch(text string) (*Catch, error) {
	playerMatch := catchPlayerRe.FindStringSubmatch(text)
	if playerMatch == nil {
		return nil, fmt.Errorf("missing player name")
	}
	player := strings.TrimSpace(playerMatch[1])
	if player == "" {
		return nil, fmt.Errorf("empty player name")
	}

	coinsMatch := catchCoinsRe.FindStringSubmatch(text)
	if coinsMatch == nil {
		return nil, fmt.Errorf("missing credited coins")
	}
	coins, err := decimal.NewFromString(coinsMatch[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse credited coins: %w", err)
	}

	return &Catch{
		Player: player,
		Coins:  coins,
	}, nil
}
