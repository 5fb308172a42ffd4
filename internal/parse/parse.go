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
	"fmt"

	"github.com/blinklabs-io/bankbot/internal/classify"
)

// Parse dispatches already-classified text to the format's parser and
// returns the typed record. classify.LabelUnknown has no parser; callers
// filter it out before dispatch.
func Parse(label classify.Label, text string) (Record, error) {
	switch label {
	case classify.LabelGDCardsProfile:
		return parseGDCardsProfile(text)
	case classify.LabelGDCardsAccrual:
		return parseGDCardsNewCard(text)
	case classify.LabelFishing:
		return parseFishingCatch(text)
	case classify.LabelKarma:
		return parseKarmaLike(text)
	case classify.LabelMafiaGameEnd:
		return parseMafiaGameEnd(text)
	case classify.LabelMafiaProfile:
		return parseMafiaProfile(text)
	case classify.LabelBunkerGameEnd:
		return parseBunkerGameEnd(text)
	case classify.LabelBunkerProfile:
		return parseBunkerProfile(text)
	}
	return nil, &Error{
		Label: label.String(),
		Err:   fmt.Errorf("no parser for label"),
	}
}
