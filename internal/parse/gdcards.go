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

package parse

import (
	"github.com/blinklabs-io/bankbot/internal/classify"
	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/blinklabs-io/bankbot/internal/parse/gdcards"
)

func parseGDCardsProfile(text string) (Record, error) {
	profile, err := gdcards.ParseProfile(text)
	if err != nil {
		return nil, &Error{
			Label: classify.LabelGDCardsProfile.String(),
			Err:   err,
		}
	}
	return &ProfileSnapshot{
		Game:   common.GameGDCards,
		Player: profile.Player,
		Amount: profile.Orbs,
	}, nil
}

func parseGDCardsNewCard(text string) (Record, error) {
	card, err := gdcards.ParseNewCard(text)
	if err != nil {
		return nil, &Error{
			Label: classify.LabelGDCardsAccrual.String(),
			Err:   err,
		}
	}
	return &Accrual{
		Game:   common.GameGDCards,
		Player: card.Player,
		Amount: card.Points,
	}, nil
}
