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

package api

import (
	"time"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/shopspring/decimal"
)

// MessageRequest is the POST /v1/messages body. The timestamp is the source
// event time reported by the chat transport, not the arrival time; it feeds
// the message identity together with the raw text.
type MessageRequest struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	Name        string               `json:"name"`
	BankBalance decimal.Decimal      `json:"bankBalance"`
	BotBalances []BotBalanceResponse `json:"botBalances"`
}

type BotBalanceResponse struct {
	Game              common.Game     `json:"game"`
	LastBalance       decimal.Decimal `json:"lastBalance"`
	CurrentBotBalance decimal.Decimal `json:"currentBotBalance"`
}
