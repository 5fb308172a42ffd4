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

package mafia

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	profilePlayerRe = regexp.MustCompile(`👤[ \t]*([^\n]+)`)
	profileMoneyRe  = regexp.MustCompile(`💵 Деньги:[ \t]*(\d+)`)
)

const winnersHeader = "Победители:"

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

// ParseGameEnd collects the winner names listed under the winners header, in
// list order. Winner lines have the form "<name> - <role>"; the list ends at
// the first blank line or the first line in another form. An empty list is a
// valid game summary.
func ParseGameEnd(text string) (*GameEnd, error) {
	_, rest, found := strings.Cut(text, winnersHeader)
	if !found {
		return nil, fmt.Errorf("missing winners header")
	}

	winners := []string{}
	lines := strings.Split(rest, "\n")
	// lines[0] is the tail of the header line itself
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		name, _, found := strings.Cut(line, " - ")
		if !found {
			break
		}
		name = strings.TrimSpace(name)
		if name == "" {
			break
		}
		winners = append(winners, name)
	}

	return &GameEnd{
		Winners: winners,
	}, nil
}
