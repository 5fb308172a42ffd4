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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/blinklabs-io/bankbot/internal/storage"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Key layout. Bot balance keys put the game first: games are a fixed enum
// that never contains ":", while user names are arbitrary text, so this
// order keeps the key unambiguous.
const (
	userKeyPrefix       = "user_"
	botBalanceKeyPrefix = "botbalance_"
	processedKeyPrefix  = "processed_"
)

func userKey(name string) string {
	return userKeyPrefix + name
}

func botBalanceKey(game common.Game, name string) string {
	return botBalanceKeyPrefix + game.String() + ":" + name
}

func processedKey(messageID string) string {
	return processedKeyPrefix + messageID
}

// Repository persists users, bot balances, and the processed-message set.
// Every operation takes the caller's transaction, so all mutations for one
// message commit or roll back together.
type Repository struct {
	store *storage.Storage
	// processedRetention bounds how long processed-message markers live;
	// zero keeps them forever
	processedRetention time.Duration
}

func NewRepository(
	store *storage.Storage,
	processedRetention time.Duration,
) *Repository {
	return &Repository{
		store:              store,
		processedRetention: processedRetention,
	}
}

// Update runs fn inside a read-write transaction
func (r *Repository) Update(fn func(txn *badger.Txn) error) error {
	return r.store.Update(fn)
}

// View runs fn inside a read-only transaction
func (r *Repository) View(fn func(txn *badger.Txn) error) error {
	return r.store.View(fn)
}

// GetUser returns the user with the given name, or nil when none exists
func (r *Repository) GetUser(
	txn *badger.Txn,
	name string,
) (*User, error) {
	item, err := txn.Get([]byte(userKey(name)))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var user User
	err = item.Value(func(v []byte) error {
		return json.Unmarshal(v, &user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// GetOrCreateUser returns the user with the given name, creating it with a
// zero bank balance on first sighting
func (r *Repository) GetOrCreateUser(
	txn *badger.Txn,
	name string,
) (*User, error) {
	user, err := r.GetUser(txn, name)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	now := time.Now().UTC()
	user = &User{
		ID:          uuid.New(),
		Name:        name,
		BankBalance: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.putUser(txn, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repository) putUser(txn *badger.Txn, user *User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := txn.Set([]byte(userKey(user.Name)), data); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// UpdateUserBalance sets the user's bank balance and persists the row. The
// passed struct is updated in place so the caller sees the new balance.
func (r *Repository) UpdateUserBalance(
	txn *badger.Txn,
	user *User,
	newBalance decimal.Decimal,
) error {
	user.BankBalance = newBalance
	user.UpdatedAt = time.Now().UTC()
	return r.putUser(txn, user)
}

// GetBotBalance returns the (user, game) balance row, or nil when none
// exists
func (r *Repository) GetBotBalance(
	txn *badger.Txn,
	name string,
	game common.Game,
) (*BotBalance, error) {
	item, err := txn.Get([]byte(botBalanceKey(game, name)))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var botBalance BotBalance
	err = item.Value(func(v []byte) error {
		return json.Unmarshal(v, &botBalance)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal bot balance: %w", err)
	}
	return &botBalance, nil
}

// CreateBotBalance creates the (user, game) balance row with the given
// starting values
func (r *Repository) CreateBotBalance(
	txn *badger.Txn,
	user *User,
	game common.Game,
	last decimal.Decimal,
	current decimal.Decimal,
) (*BotBalance, error) {
	now := time.Now().UTC()
	botBalance := &BotBalance{
		UserID:            user.ID,
		UserName:          user.Name,
		Game:              game,
		LastBalance:       last,
		CurrentBotBalance: current,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := r.putBotBalance(txn, botBalance); err != nil {
		return nil, err
	}
	return botBalance, nil
}

func (r *Repository) putBotBalance(
	txn *badger.Txn,
	botBalance *BotBalance,
) error {
	data, err := json.Marshal(botBalance)
	if err != nil {
		return fmt.Errorf("failed to marshal bot balance: %w", err)
	}
	key := botBalanceKey(botBalance.Game, botBalance.UserName)
	if err := txn.Set([]byte(key), data); err != nil {
		return fmt.Errorf("failed to save bot balance: %w", err)
	}
	return nil
}

// UpdateBotLastBalance sets the last observed snapshot value and persists
// the row. CurrentBotBalance is deliberately untouched.
func (r *Repository) UpdateBotLastBalance(
	txn *badger.Txn,
	botBalance *BotBalance,
	value decimal.Decimal,
) error {
	botBalance.LastBalance = value
	botBalance.UpdatedAt = time.Now().UTC()
	return r.putBotBalance(txn, botBalance)
}

// UpdateBotCurrentBalance sets the accumulated in-game balance and persists
// the row. LastBalance is deliberately untouched.
func (r *Repository) UpdateBotCurrentBalance(
	txn *badger.Txn,
	botBalance *BotBalance,
	value decimal.Decimal,
) error {
	botBalance.CurrentBotBalance = value
	botBalance.UpdatedAt = time.Now().UTC()
	return r.putBotBalance(txn, botBalance)
}

// ListBotBalances returns the user's balance rows for every game that has
// one, in the stable game order
func (r *Repository) ListBotBalances(
	txn *badger.Txn,
	name string,
) ([]*BotBalance, error) {
	ret := []*BotBalance{}
	for _, game := range common.Games() {
		botBalance, err := r.GetBotBalance(txn, name, game)
		if err != nil {
			return nil, err
		}
		if botBalance != nil {
			ret = append(ret, botBalance)
		}
	}
	return ret, nil
}

// IsProcessed reports whether a message ID has already been applied
func (r *Repository) IsProcessed(
	txn *badger.Txn,
	messageID string,
) (bool, error) {
	_, err := txn.Get([]byte(processedKey(messageID)))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MarkProcessed records a message ID as applied. With a configured
// retention the marker expires once duplicate delivery is no longer
// plausible; without one it lives forever.
func (r *Repository) MarkProcessed(
	txn *badger.Txn,
	messageID string,
) error {
	processed := ProcessedMessage{
		MessageID:   messageID,
		ProcessedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(&processed)
	if err != nil {
		return fmt.Errorf("failed to marshal processed marker: %w", err)
	}
	key := []byte(processedKey(messageID))
	if r.processedRetention > 0 {
		entry := badger.NewEntry(key, data).WithTTL(r.processedRetention)
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("failed to save processed marker: %w", err)
		}
		return nil
	}
	if err := txn.Set(key, data); err != nil {
		return fmt.Errorf("failed to save processed marker: %w", err)
	}
	return nil
}
