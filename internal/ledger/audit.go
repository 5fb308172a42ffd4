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
	"time"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/blinklabs-io/bankbot/internal/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Audit record kinds, one per balance-affecting operation plus the error
// record
const (
	AuditProfileInit   = "profile_init"
	AuditProfileUpdate = "profile_update"
	AuditAccrual       = "accrual"
	AuditGameEndReward = "game_end_reward"
	AuditError         = "error"
)

// Entry is one audit record. Before and After are the user's bank balance
// around the operation. Delta is the in-game amount the operation applied:
// the snapshot change for profile_update, the credited amount for accrual
// and game_end_reward, and the anchored snapshot value for profile_init.
type Entry struct {
	Timestamp   time.Time       `json:"timestamp"`
	Kind        string          `json:"kind"`
	Player      string          `json:"player"`
	Game        common.Game     `json:"game"`
	Before      decimal.Decimal `json:"before"`
	After       decimal.Decimal `json:"after"`
	Delta       decimal.Decimal `json:"delta"`
	Coefficient decimal.Decimal `json:"coefficient"`
	BankChange  decimal.Decimal `json:"bankChange"`
	MessageID   string          `json:"messageId,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// Recorder buffers the audit entries produced while applying one message
// and writes them to the log in one flush just before the enclosing
// transaction commits. Entries from an attempt that rolls back are dropped
// with Reset, so the log only ever describes committed changes.
type Recorder struct {
	logger  *zap.SugaredLogger
	entries []Entry
}

func NewRecorder() *Recorder {
	return &Recorder{
		logger: logging.GetLogger(),
	}
}

// Record buffers one entry. A zero timestamp is filled in with the current
// time.
func (r *Recorder) Record(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	r.entries = append(r.entries, entry)
}

// Entries returns the buffered entries
func (r *Recorder) Entries() []Entry {
	return r.entries
}

// Reset drops all buffered entries
func (r *Recorder) Reset() {
	r.entries = r.entries[:0]
}

// Flush writes all buffered entries to the log, clears the buffer, and
// returns what it wrote. The returned slice is a copy: Reset reuses the
// buffer's backing array for the next message.
func (r *Recorder) Flush() []Entry {
	flushed := make([]Entry, len(r.entries))
	copy(flushed, r.entries)
	for _, entry := range flushed {
		r.log(entry)
	}
	r.Reset()
	return flushed
}

// RecordError immediately logs one error entry, bypassing the buffer. The
// buffered entries of the failed attempt are dropped first: their changes
// rolled back and must not appear in the log.
func (r *Recorder) RecordError(messageID string, err error) {
	r.Reset()
	entry := Entry{
		Timestamp: time.Now().UTC(),
		Kind:      AuditError,
		MessageID: messageID,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	r.log(entry)
}

func (r *Recorder) log(entry Entry) {
	fields := []any{
		"kind", entry.Kind,
	}
	if entry.Kind == AuditError {
		fields = append(fields,
			"message_id", entry.MessageID,
			"error", entry.Error,
		)
	} else {
		fields = append(fields,
			"player", entry.Player,
			"game", entry.Game.String(),
			"before", entry.Before.String(),
			"after", entry.After.String(),
			"delta", entry.Delta.String(),
			"coefficient", entry.Coefficient.String(),
			"bank_change", entry.BankChange.String(),
		)
	}
	r.logger.Infow("audit", fields...)
}
