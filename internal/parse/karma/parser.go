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

package karma

import (
	"fmt"
	"regexp"
	"strings"
)

// The name runs from the word after "пользователя" to the end of the line
// or the first punctuation mark
var likePlayerRe = regexp.MustCompile(`пользователя[ \t]+([^\n!.,:;?]+)`)

// ParseLike extracts the player name from a karma like
func ParseLike(text string) (*Like, error) {
	playerMatch := likePlayerRe.FindStringSubmatch(text)
	if playerMatch == nil {
		return nil, fmt.Errorf("missing player name")
	}
	player := strings.TrimSpace(playerMatch[1])
	if player == "" {
		return nil, fmt.Errorf("empty player name")
	}

	return &Like{
		Player: player,
	}, nil
}
