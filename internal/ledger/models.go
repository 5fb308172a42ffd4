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

// Package ledger maintains the two linked balance ledgers: a unified bank
// balance per user and a per-(user, game) bot balance. All monetary values
// are decimals end to end and persist as textual decimal in JSON, never as
// binary floats.
package ledger

import (
	"fmt"
	"time"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is one bank account holder. Name is case-sensitive and unique; two
// names differing only in case are two users. Users are created on first
// sighting and never deleted.
type User struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	BankBalance decimal.Decimal `json:"bankBalance"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (u User) String() string {
	return fmt.Sprintf(
		"User< name = %s, bank_balance = %s >",
		u.Name,
		u.BankBalance,
	)
}

// BotBalance is the per-(user, game) ledger. LastBalance is the most recent
// profile snapshot and only the snapshot path writes it; CurrentBotBalance
// accumulates credited in-game currency and only the accrual paths write it.
type BotBalance struct {
	UserID            uuid.UUID       `json:"userId"`
	UserName          string          `json:"userName"`
	Game              common.Game     `json:"game"`
	LastBalance       decimal.Decimal `json:"lastBalance"`
	CurrentBotBalance decimal.Decimal `json:"currentBotBalance"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (b BotBalance) String() string {
	return fmt.Sprintf(
		"BotBalance< user = %s, game = %s, last = %s, current = %s >",
		b.UserName,
		b.Game,
		b.LastBalance,
		b.CurrentBotBalance,
	)
}

// ProcessedMessage marks one message ID as durably applied
type ProcessedMessage struct {
	MessageID   string    `json:"messageId"`
	ProcessedAt time.Time `json:"processedAt"`
}
