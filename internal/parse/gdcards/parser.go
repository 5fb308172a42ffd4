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

package gdcards

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	profilePlayerRe = regexp.MustCompile(`ПРОФИЛЬ[ \t]+([^\n]+)`)
	profileOrbsRe   = regexp.MustCompile(`Орбы:[ \t]*(\d+)`)
	newCardPlayerRe = regexp.MustCompile(`Игрок:[ \t]*([^\n]+)`)
	newCardPointsRe = regexp.MustCompile(`Очки:[ \t]*\+(\d+)`)
)

// ParseProfile extracts the player name and orb balance from a profile
// message
func ParseProfile(text string) (*Profile, error) {
	playerMatch := profilePlayerRe.FindStringSubmatch(text)
	if playerMatch == nil {
		return nil, fmt.Errorf("missing player name on profile line")
	}
	player := strings.TrimSpace(playerMatch[1])
	if player == "" {
		return nil, fmt.Errorf("empty player name on profile line")
	}

	orbsMatch := profileOrbsRe.FindStringSubmatch(text)
	if orbsMatch == nil {
		return nil, fmt.Errorf("missing orb balance")
	}
	orbs, err := decimal.NewFromString(orbsMatch[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse orb balance: %w", err)
	}

	return &Profile{
		Player: player,
		Orbs:   orbs,
	}, nil
}

// ParseNewCard extracts the player name and credited points from a new-card
// announcement
func ParseNewCard(text string) (*NewCard, error) {
	playerMatch := newCardPlayerRe.FindStringSubmatch(text)
	if playerMatch == nil {
		return nil, fmt.Errorf("missing player name")
	}
	player := strings.TrimSpace(playerMatch[1])
	if player == "" {
		return nil, fmt.Errorf("empty player name")
	}

	pointsMatch := newCardPointsRe.FindStringSubmatch(text)
	if pointsMatch == nil {
		return nil, fmt.Errorf("missing credited points")
	}
	points, err := decimal.NewFromString(pointsMatch[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse credited points: %w", err)
	}

	return &NewCard{
		Player: player,
		Points: points,
	}, nil
}
