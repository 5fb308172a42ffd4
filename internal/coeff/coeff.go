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

// Package coeff supplies the per-game exchange coefficients that map
// in-game currency changes onto bank currency.
package coeff

import (
	"fmt"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/shopspring/decimal"
)

// UnknownGameError reports a lookup for a game with no configured
// coefficient. It indicates a configuration gap, not bad input.
type UnknownGameError struct {
	Game common.Game
}

func (e *UnknownGameError) Error() string {
	return fmt.Sprintf("no coefficient configured for game %q", e.Game)
}

// Provider holds an immutable game-to-coefficient mapping. Picking up
// changed configuration means constructing a new Provider; there is no
// reload.
type Provider struct {
	coefficients map[common.Game]decimal.Decimal
}

// NewProvider copies the given mapping into a new Provider. Later changes
// to the source map are not observed.
func NewProvider(coefficients map[common.Game]decimal.Decimal) *Provider {
	c := make(map[common.Game]decimal.Decimal, len(coefficients))
	for game, coefficient := range coefficients {
		c[game] = coefficient
	}
	return &Provider{
		coefficients: c,
	}
}

// Get returns the coefficient for a game
func (p *Provider) Get(game common.Game) (decimal.Decimal, error) {
	coefficient, ok := p.coefficients[game]
	if !ok {
		return decimal.Zero, &UnknownGameError{Game: game}
	}
	return coefficient, nil
}
