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

// Package classify maps raw message text onto the fixed set of message
// formats the engine understands
package classify

import (
	"strings"

	"github.com/blinklabs-io/bankbot/internal/common"
)

// Label identifies one known message format (or none)
type Label int

const (
	LabelUnknown Label = iota
	LabelGDCardsProfile
	LabelGDCardsAccrual
	LabelFishing
	LabelKarma
	LabelMafiaGameEnd
	LabelMafiaProfile
	LabelBunkerGameEnd
	LabelBunkerProfile
)

// Marker substrings copied verbatim from the game bots' message templates.
// Matching is literal and case-sensitive.
const (
	MarkerGDCardsProfileHeader  = "ПРОФИЛЬ"
	MarkerGDCardsProfileOrbs    = "Орбы:"
	MarkerGDCardsAccrual        = "🃏 НОВАЯ КАРТА 🃏"
	MarkerFishing               = "🎣 [Рыбалка] 🎣"
	MarkerKarma                 = "Лайк! Вы повысили рейтинг пользователя"
	MarkerMafiaGameEndHeader    = "Игра окончена!"
	MarkerMafiaGameEndWinners   = "Победители:"
	MarkerMafiaProfileStones    = "💎 Камни:"
	MarkerMafiaProfileRole      = "🎎 Активная роль:"
	MarkerBunkerGameEnd         = "Прошли в бункер:"
	MarkerBunkerProfileCrystals = "💎 Кристаллики:"
	MarkerBunkerProfileWins     = "🎯 Побед:"
	MarkerProfileMoney          = "💵 Деньги:"
)

type rule struct {
	label   Label
	markers []string
}

// Rules are checked in a fixed order: game-end markers first, then profile
// markers (which share the money marker), then activity markers, then karma.
// The first rule whose markers are all present wins.
var rules = []rule{
	{
		label:   LabelMafiaGameEnd,
		markers: []string{MarkerMafiaGameEndHeader, MarkerMafiaGameEndWinners},
	},
	{
		label:   LabelBunkerGameEnd,
		markers: []string{MarkerBunkerGameEnd},
	},
	{
		label:   LabelGDCardsProfile,
		markers: []string{MarkerGDCardsProfileHeader, MarkerGDCardsProfileOrbs},
	},
	{
		label: LabelMafiaProfile,
		markers: []string{
			MarkerMafiaProfileStones,
			MarkerMafiaProfileRole,
			MarkerProfileMoney,
		},
	},
	{
		label: LabelBunkerProfile,
		markers: []string{
			MarkerBunkerProfileCrystals,
			MarkerBunkerProfileWins,
			MarkerProfileMoney,
		},
	},
	{
		label:   LabelGDCardsAccrual,
		markers: []string{MarkerGDCardsAccrual},
	},
	{
		label:   LabelFishing,
		markers: []string{MarkerFishing},
	},
	{
		label:   LabelKarma,
		markers: []string{MarkerKarma},
	},
}

// Classify returns the label for a raw message text, or LabelUnknown when no
// known format matches. It is a pure function of its input.
func Classify(text string) Label {
	for _, r := range rules {
		matched := true
		for _, marker := range r.markers {
			if !strings.Contains(text, marker) {
				matched = false
				break
			}
		}
		if matched {
			return r.label
		}
	}
	return LabelUnknown
}

// Labels returns every label a message can classify to, in a stable order
func Labels() []Label {
	return []Label{
		LabelUnknown,
		LabelGDCardsProfile,
		LabelGDCardsAccrual,
		LabelFishing,
		LabelKarma,
		LabelMafiaGameEnd,
		LabelMafiaProfile,
		LabelBunkerGameEnd,
		LabelBunkerProfile,
	}
}

// Game returns the game a label's messages belong to. LabelUnknown maps to
// the empty game.
func (l Label) Game() common.Game {
	switch l {
	case LabelGDCardsProfile, LabelGDCardsAccrual:
		return common.GameGDCards
	case LabelFishing:
		return common.GameShmalala
	case LabelKarma:
		return common.GameShmalalaKarma
	case LabelMafiaGameEnd, LabelMafiaProfile:
		return common.GameTrueMafia
	case LabelBunkerGameEnd, LabelBunkerProfile:
		return common.GameBunkerRP
	}
	return common.Game("")
}

func (l Label) String() string {
	switch l {
	case LabelGDCardsProfile:
		return "gdcards_profile"
	case LabelGDCardsAccrual:
		return "gdcards_accrual"
	case LabelFishing:
		return "fishing"
	case LabelKarma:
		return "karma"
	case LabelMafiaGameEnd:
		return "mafia_game_end"
	case LabelMafiaProfile:
		return "mafia_profile"
	case LabelBunkerGameEnd:
		return "bunker_game_end"
	case LabelBunkerProfile:
		return "bunker_profile"
	}
	return "unknown"
}
