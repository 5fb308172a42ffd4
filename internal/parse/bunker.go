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
	"github.com/blinklabs-io/bankbot/internal/parse/bunker"
)

func parseBunkerProfile(text string) (Record, error) {
	profile, err := bunker.ParseProfile(text)
	if err != nil {
		return nil, &Error{
			Label: classify.LabelBunkerProfile.String(),
			Err:   err,
		}
	}
	return &ProfileSnapshot{
		Game:   common.GameBunkerRP,
		Player: profile.Player,
		Amount: profile.Money,
	}, nil
}

func parseBunkerGameEnd(text string) (Record, error) {
	gameEnd, err := bunker.ParseGameEnd(text)
	if err != nil {
		return nil, &Error{
			Label: classify.LabelBunkerGameEnd.String(),
			Err:   err,
		}
	}
	return &GameEnd{
		Game:    common.GameBunkerRP,
		Winners: gameEnd.Survivors,
		Reward:  common.WinReward(common.GameBunkerRP),
	}, nil
}
