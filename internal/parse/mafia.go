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
	"github.com/blinklabs-io/bankbot/internal/parse/mafia"
)

func parseMafiaProfile(text string) (Record, error) {
	profile, err := mafia.ParseProfile(text)
	if err != nil {
		return nil, &Error{
			Label: classify.LabelMafiaProfile.String(),
			Err:   err,
		}
	}
	return &ProfileSnapshot{
		Game:   common.GameTrueMafia,
		Player: profile.Player,
		Amount: profile.Money,
	}, nil
}

func parseMafiaGameEnd(text string) (Record, error) {
	gameEnd, err := mafia.ParseGameEnd(text)
	if err != nil {
		return nil, &Error{
			Label: classify.LabelMafiaGameEnd.String(),
			Err:   err,
		}
	}
	return &GameEnd{
		Game:    common.GameTrueMafia,
		Winners: gameEnd.Winners,
		Reward:  common.WinReward(common.GameTrueMafia),
	}, nil
}
