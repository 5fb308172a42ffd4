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

// Package fishing provides message parsing for the Shmalala fishing bot.
package fishing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catch is the parsed form of a fishing report. Coins is the amount credited
// for the catch.
type Catch struct {
	Player string
	Coins  decimal.Decimal
}

func (c Catch) String() string {
	return fmt.Sprintf(
		"Catch< player = %s, coins = %s >",
		c.Player,
		c.Coins,
	)
}
