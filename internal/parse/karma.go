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
	"github.com/blinklabs-io/bankbot/internal/parse/karma"
	"github.com/shopspring/decimal"
)

// Each like is worth exactly one karma point
var karmaLikeAmount = decimal.NewFromInt(1)

func parseKarmaLike(text string) (Record, error) {
	like, err := karma.ParseLike(text)
	if err != nil {
		return nil, &Error{
			Label: classify.LabelKarma.String(),
			Err:   err,
		}
	}
	return &Accrual{
		Game:   common.GameShmalalaKarma,
		Player: like.Player,
		Amount: karmaLikeAmount,
	}, nil
}
