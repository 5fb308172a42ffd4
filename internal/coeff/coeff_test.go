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

package coeff

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/shopspring/decimal"
)

func TestProviderGet(t *testing.T) {
	provider := NewProvider(map[common.Game]decimal.Decimal{
		common.GameGDCards:  decimal.NewFromInt(2),
		common.GameShmalala: decimal.NewFromInt(1),
	})

	coefficient, err := provider.Get(common.GameGDCards)
	if err != nil {
		t.Fatalf("failed to get coefficient: %v", err)
	}
	if coefficient.String() != "2" {
		t.Errorf("expected coefficient 2, got %s", coefficient)
	}
}

func TestProviderGetUnknownGame(t *testing.T) {
	provider := NewProvider(map[common.Game]decimal.Decimal{
		common.GameGDCards: decimal.NewFromInt(2),
	})

	_, err := provider.Get(common.GameTrueMafia)
	if err == nil {
		t.Fatal("expected error for unconfigured game")
	}
	var unknownErr *UnknownGameError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownGameError, got %T", err)
	}
	if unknownErr.Game != common.GameTrueMafia {
		t.Errorf(
			"expected game %s in error, got %s",
			common.GameTrueMafia,
			unknownErr.Game,
		)
	}
}

func TestProviderCopiesMapping(t *testing.T) {
	source := map[common.Game]decimal.Decimal{
		common.GameGDCards: decimal.NewFromInt(2),
	}
	provider := NewProvider(source)

	// Mutating the source map must not be observed by the provider
	source[common.GameGDCards] = decimal.NewFromInt(99)

	coefficient, err := provider.Get(common.GameGDCards)
	if err != nil {
		t.Fatalf("failed to get coefficient: %v", err)
	}
	if coefficient.String() != "2" {
		t.Errorf("expected coefficient 2, got %s", coefficient)
	}
}
