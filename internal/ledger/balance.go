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

package ledger

import (
	"fmt"

	"github.com/blinklabs-io/bankbot/internal/coeff"
	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/blinklabs-io/bankbot/internal/parse"
	"github.com/dgraph-io/badger/v4"
	"github.com/shopspring/decimal"
)

// Manager applies parsed records to the two ledgers. Every rule that
// touches a balance lives here; the snapshot path never writes
// CurrentBotBalance and the accrual paths never write LastBalance.
type Manager struct {
	repo  *Repository
	coeff *coeff.Provider
}

func NewManager(repo *Repository, provider *coeff.Provider) *Manager {
	return &Manager{
		repo:  repo,
		coeff: provider,
	}
}

// Apply routes one parsed record to its accounting rule inside the caller's
// transaction, buffering audit entries on rec. On error the caller discards
// the transaction; nothing applied here survives.
func (m *Manager) Apply(
	txn *badger.Txn,
	rec *Recorder,
	record parse.Record,
) error {
	switch record := record.(type) {
	case *parse.ProfileSnapshot:
		return m.applyProfile(txn, rec, record.Player, record.Game, record.Amount)
	case *parse.Accrual:
		return m.applyAccrual(
			txn,
			rec,
			record.Player,
			record.Game,
			record.Amount,
			AuditAccrual,
		)
	case *parse.GameEnd:
		// Winner order affects only the audit trail, not final state
		for _, winner := range record.Winners {
			err := m.applyAccrual(
				txn,
				rec,
				winner,
				record.Game,
				record.Reward,
				AuditGameEndReward,
			)
			if err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unhandled record type %T", record)
}

// applyProfile handles a balance snapshot. The first snapshot for a
// (player, game) pair only anchors LastBalance: crediting it would mint
// currency the player accumulated before the engine was watching. Later
// snapshots move the bank balance by the delta times the game coefficient;
// the delta may be negative and the bank balance may go below zero.
func (m *Manager) applyProfile(
	txn *badger.Txn,
	rec *Recorder,
	player string,
	game common.Game,
	observed decimal.Decimal,
) error {
	coefficient, err := m.coeff.Get(game)
	if err != nil {
		return err
	}
	user, err := m.repo.GetOrCreateUser(txn, player)
	if err != nil {
		return err
	}
	botBalance, err := m.repo.GetBotBalance(txn, player, game)
	if err != nil {
		return err
	}

	if botBalance == nil {
		_, err := m.repo.CreateBotBalance(txn, user, game, observed, decimal.Zero)
		if err != nil {
			return err
		}
		rec.Record(Entry{
			Kind:        AuditProfileInit,
			Player:      player,
			Game:        game,
			Before:      user.BankBalance,
			After:       user.BankBalance,
			Delta:       observed,
			Coefficient: coefficient,
			BankChange:  decimal.Zero,
		})
		return nil
	}

	delta := observed.Sub(botBalance.LastBalance)
	bankChange := delta.Mul(coefficient)
	before := user.BankBalance

	if err := m.repo.UpdateBotLastBalance(txn, botBalance, observed); err != nil {
		return err
	}
	err = m.repo.UpdateUserBalance(txn, user, user.BankBalance.Add(bankChange))
	if err != nil {
		return err
	}

	rec.Record(Entry{
		Kind:        AuditProfileUpdate,
		Player:      player,
		Game:        game,
		Before:      before,
		After:       user.BankBalance,
		Delta:       delta,
		Coefficient: coefficient,
		BankChange:  bankChange,
	})
	return nil
}

// applyAccrual credits an in-game amount to the (player, game) pair and the
// matching bank amount to the user. The balance row is created on demand
// with both values at zero.
func (m *Manager) applyAccrual(
	txn *badger.Txn,
	rec *Recorder,
	player string,
	game common.Game,
	amount decimal.Decimal,
	kind string,
) error {
	coefficient, err := m.coeff.Get(game)
	if err != nil {
		return err
	}
	user, err := m.repo.GetOrCreateUser(txn, player)
	if err != nil {
		return err
	}
	botBalance, err := m.repo.GetBotBalance(txn, player, game)
	if err != nil {
		return err
	}
	if botBalance == nil {
		botBalance, err = m.repo.CreateBotBalance(
			txn,
			user,
			game,
			decimal.Zero,
			decimal.Zero,
		)
		if err != nil {
			return err
		}
	}

	bankChange := amount.Mul(coefficient)
	before := user.BankBalance

	err = m.repo.UpdateBotCurrentBalance(
		txn,
		botBalance,
		botBalance.CurrentBotBalance.Add(amount),
	)
	if err != nil {
		return err
	}
	err = m.repo.UpdateUserBalance(txn, user, user.BankBalance.Add(bankChange))
	if err != nil {
		return err
	}

	rec.Record(Entry{
		Kind:        kind,
		Player:      player,
		Game:        game,
		Before:      before,
		After:       user.BankBalance,
		Delta:       amount,
		Coefficient: coefficient,
		BankChange:  bankChange,
	})
	return nil
}
