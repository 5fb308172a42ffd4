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

package bunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	profilePlayerRe = regexp.MustCompile(`👤[ \t]*([^\n]+)`)
	profileMoneyRe  = regexp.MustCompile(`💵 Деньги:[ \t]*(\d+)`)
	survivorLineRe  = regexp.MustCompile(`^\d+\.[ \t]+(.+)$`)
)

const survivorsHeader = "Прошли в бункер:"

// ParseProfile extracts the player name and money balance from a profile
// message
func ParseProfile(text string) (*Profile, error) {
	playerMatch := profilePlayerRe.FindStringSubmatch(text)
	if playerMatch == nil {
		return nil, fmt.Errorf("missing player name")
	}
	player := strings.TrimSpace(playerMatch[1])
	if player == "" {
		return nil, fmt.Errorf("empty player name")
	}

	moneyMatch := profileMoneyRe.FindStringSubmatch(text)
	if moneyMatch == nil {
		return nil, fmt.Errorf("missing money balance")
	}
	money, err := decimal.NewFromString(moneyMatch[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse money balance: %w", err)
	}

	return &Profile{
		Player: player,
		Money:  money,
	}, nil
}

// ParseGameEnd collects the survivor names listed under the bunker header,
// in numbered order. Survivor lines have the form "<n>. <name>"; the list
// ends at the first blank line or the first line in another form. An empty
// list is a valid round summary.
func ParseGameEnd(text string) (*GameEnd, error) {
	_, rest, found := strings.Cut(text, survivorsHeader)
	if !found {
		return nil, fmt.Errorf("missing survivors header")
	}

	survivors := []string{}
	lines := strings.Split(rest, "\n")
	// lines[0] is the tail of the header line itself
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		lineMatch := survivorLineRe.FindStringSubmatch(line)
		if lineMatch == nil {
			break
		}
		name := strings.TrimSpace(lineMatch[1])
		if name == "" {
			break
		}
		survivors = append(survivors, name)
	}

	return &GameEnd{
		Survivors: survivors,
	}, nil
}
