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

// Package engine orchestrates one message's path from raw text to committed
// ledger changes: duplicate check, classify, parse, apply, mark processed,
// all inside one transaction.
package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blinklabs-io/bankbot/internal/classify"
	"github.com/blinklabs-io/bankbot/internal/coeff"
	"github.com/blinklabs-io/bankbot/internal/ledger"
	"github.com/blinklabs-io/bankbot/internal/logging"
	"github.com/blinklabs-io/bankbot/internal/metrics"
	"github.com/blinklabs-io/bankbot/internal/parse"
	"github.com/dgraph-io/badger/v4"
)

// Transaction conflicts under snapshot isolation resolve by rerunning the
// loser; past this many attempts something is systematically wrong and the
// caller gets a retryable error instead.
const conflictRetryLimit = 5

// MessageID derives the stable ID for a message: lowercase hex SHA-256 over
// the RFC3339Nano UTC timestamp, a newline, and the raw text. This is the
// sha256/v1 scheme named in the storage fingerprint; changing the derivation
// requires migrating the processed-message set.
func MessageID(text string, timestamp time.Time) string {
	h := sha256.New()
	h.Write([]byte(timestamp.UTC().Format(time.RFC3339Nano)))
	h.Write([]byte("\n"))
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Engine processes messages. It performs no background work; all progress
// is caller-driven, and callers may invoke Process concurrently.
type Engine struct {
	repo          *ledger.Repository
	manager       *ledger.Manager
	subscribers   []chan *BalanceUpdate
	subscribersMu sync.RWMutex
}

func New(repo *ledger.Repository, manager *ledger.Manager) *Engine {
	return &Engine{
		repo:    repo,
		manager: manager,
	}
}

// Process applies one message. A nil return means the message's ledger
// effects are durably committed and the message is marked processed;
// replaying the same text and timestamp afterwards is a no-op. On error the
// message is not marked processed and retryable failures may be resubmitted.
func (e *Engine) Process(
	ctx context.Context,
	text string,
	timestamp time.Time,
) error {
	logger := logging.GetLogger()
	start := time.Now()
	defer func() {
		metrics.ProcessDuration.Observe(time.Since(start).Seconds())
	}()

	messageID := MessageID(text, timestamp)

	// Fast path for committed duplicates, outside any write transaction
	var processed bool
	err := e.repo.View(func(txn *badger.Txn) error {
		var err error
		processed, err = e.repo.IsProcessed(txn, messageID)
		return err
	})
	if err != nil {
		return e.fail(StorageFailed, messageID, err)
	}
	if processed {
		logger.Debugw("skipping duplicate message", "message_id", messageID)
		metrics.MessagesDuplicate.Inc()
		return nil
	}

	rec := ledger.NewRecorder()
	label := classify.LabelUnknown
	var duplicate bool
	var applied []ledger.Entry
	for attempt := 0; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return e.fail(Cancelled, messageID, ctxErr)
		}
		err = e.repo.Update(func(txn *badger.Txn) error {
			rec.Reset()
			duplicate = false
			applied = nil
			// Recheck inside the transaction: under concurrent delivery
			// the processed marker is the final arbiter
			processed, err := e.repo.IsProcessed(txn, messageID)
			if err != nil {
				return err
			}
			if processed {
				duplicate = true
				return nil
			}
			label = classify.Classify(text)
			if label == classify.LabelUnknown {
				// Not an error: unknown texts are marked processed so
				// they don't re-enter the pipeline on replay
				return e.repo.MarkProcessed(txn, messageID)
			}
			record, err := parse.Parse(label, text)
			if err != nil {
				return err
			}
			if err := e.manager.Apply(txn, rec, record); err != nil {
				return err
			}
			if err := e.repo.MarkProcessed(txn, messageID); err != nil {
				return err
			}
			// Audit records go out before the commit, so a committed
			// change always has its log records
			applied = rec.Flush()
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, badger.ErrConflict) {
			if attempt < conflictRetryLimit {
				metrics.TxnConflicts.Inc()
				continue
			}
			return e.fail(StorageFailed, messageID, fmt.Errorf(
				"transaction conflict persisted after %d attempts: %w",
				attempt+1,
				err,
			))
		}
		return e.fail(errorKind(err), messageID, err)
	}

	if duplicate {
		logger.Debugw("skipping duplicate message", "message_id", messageID)
		metrics.MessagesDuplicate.Inc()
		return nil
	}

	logger.Debugw(
		"message processed",
		"message_id", messageID,
		"label", label.String(),
	)
	metrics.MessagesProcessed.WithLabelValues(label.String()).Inc()
	if len(applied) > 0 {
		e.notifySubscribers(
			NewBalanceUpdate(messageID, label.String(), applied),
		)
	}
	return nil
}

// Subscribe returns a channel that receives a balance update for every
// committed message that changed balances
func (e *Engine) Subscribe() <-chan *BalanceUpdate {
	ch := make(chan *BalanceUpdate, 100)

	e.subscribersMu.Lock()
	e.subscribers = append(e.subscribers, ch)
	e.subscribersMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription channel
func (e *Engine) Unsubscribe(ch <-chan *BalanceUpdate) {
	e.subscribersMu.Lock()
	defer e.subscribersMu.Unlock()

	for i, sub := range e.subscribers {
		if sub == ch {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			close(sub)
			break
		}
	}
}

// Stop closes all subscriber channels. Process may still be called after
// Stop; later commits simply have nobody to notify.
func (e *Engine) Stop() {
	e.subscribersMu.Lock()
	defer e.subscribersMu.Unlock()

	for _, ch := range e.subscribers {
		close(ch)
	}
	e.subscribers = nil
}

func (e *Engine) notifySubscribers(update *BalanceUpdate) {
	e.subscribersMu.RLock()
	defer e.subscribersMu.RUnlock()

	for _, ch := range e.subscribers {
		select {
		case ch <- update:
		default:
			// Channel full, skip
		}
	}
}

// fail wraps err as a ProcessError, emits the error audit record, and
// counts the failure
func (e *Engine) fail(
	kind ProcessErrorKind,
	messageID string,
	err error,
) error {
	procErr := &ProcessError{
		Kind:      kind,
		MessageID: messageID,
		Err:       err,
	}
	ledger.NewRecorder().RecordError(messageID, procErr)
	metrics.MessagesFailed.WithLabelValues(kind.String()).Inc()
	return procErr
}

func errorKind(err error) ProcessErrorKind {
	var parseErr *parse.Error
	if errors.As(err, &parseErr) {
		return ParseFailed
	}
	var unknownGameErr *coeff.UnknownGameError
	if errors.As(err, &unknownGameErr) {
		return UnknownGame
	}
	return StorageFailed
}
