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

package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blinklabs-io/bankbot/internal/coeff"
	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/blinklabs-io/bankbot/internal/ledger"
	"github.com/blinklabs-io/bankbot/internal/parse"
	"github.com/blinklabs-io/bankbot/internal/storage"
	"github.com/dgraph-io/badger/v4"
	"github.com/shopspring/decimal"
)

var testTimestamp = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func testEngine(t *testing.T) (*Engine, *ledger.Repository) {
	t.Helper()
	return testEngineWithCoefficients(
		t,
		map[common.Game]decimal.Decimal{
			common.GameGDCards:       decimal.NewFromInt(2),
			common.GameShmalala:      decimal.NewFromInt(1),
			common.GameShmalalaKarma: decimal.NewFromInt(10),
			common.GameTrueMafia:     decimal.NewFromInt(15),
			common.GameBunkerRP:      decimal.NewFromInt(20),
		},
	)
}

func testEngineWithCoefficients(
	t *testing.T,
	coefficients map[common.Game]decimal.Decimal,
) (*Engine, *ledger.Repository) {
	t.Helper()
	store, err := storage.NewInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	repo := ledger.NewRepository(store, 0)
	manager := ledger.NewManager(repo, coeff.NewProvider(coefficients))
	return New(repo, manager), repo
}

func processText(t *testing.T, e *Engine, text string) {
	t.Helper()
	if err := e.Process(context.Background(), text, testTimestamp); err != nil {
		t.Fatalf("failed to process message: %v", err)
	}
}

func checkBalances(
	t *testing.T,
	repo *ledger.Repository,
	player string,
	game common.Game,
	expectedLast string,
	expectedCurrent string,
	expectedBank string,
) {
	t.Helper()
	err := repo.View(func(txn *badger.Txn) error {
		user, err := repo.GetUser(txn, player)
		if err != nil {
			return err
		}
		if user == nil {
			t.Fatalf("expected user %s to exist", player)
		}
		if user.BankBalance.String() != expectedBank {
			t.Errorf(
				"%s: expected bank balance %s, got %s",
				player,
				expectedBank,
				user.BankBalance,
			)
		}
		botBalance, err := repo.GetBotBalance(txn, player, game)
		if err != nil {
			return err
		}
		if botBalance == nil {
			t.Fatalf("expected bot balance for (%s, %s) to exist", player, game)
		}
		if botBalance.LastBalance.String() != expectedLast {
			t.Errorf(
				"%s: expected last balance %s, got %s",
				player,
				expectedLast,
				botBalance.LastBalance,
			)
		}
		if botBalance.CurrentBotBalance.String() != expectedCurrent {
			t.Errorf(
				"%s: expected current balance %s, got %s",
				player,
				expectedCurrent,
				botBalance.CurrentBotBalance,
			)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read balances: %v", err)
	}
}

func isProcessed(
	t *testing.T,
	repo *ledger.Repository,
	messageID string,
) bool {
	t.Helper()
	var processed bool
	err := repo.View(func(txn *badger.Txn) error {
		var err error
		processed, err = repo.IsProcessed(txn, messageID)
		return err
	})
	if err != nil {
		t.Fatalf("failed to check processed marker: %v", err)
	}
	return processed
}

func TestMessageIDStable(t *testing.T) {
	text := "ПРОФИЛЬ Alice\nОрбы: 150"
	first := MessageID(text, testTimestamp)
	if first == "" {
		t.Fatal("expected non-empty message ID")
	}
	if second := MessageID(text, testTimestamp); second != first {
		t.Errorf("expected stable message ID, got %s and %s", first, second)
	}
	// The derivation normalizes to UTC, so equal instants in different
	// zones name the same message
	moscow := time.FixedZone("MSK", 3*60*60)
	if zoned := MessageID(text, testTimestamp.In(moscow)); zoned != first {
		t.Errorf("expected zone-independent message ID, got %s", zoned)
	}
}

func TestMessageIDDistinct(t *testing.T) {
	text := "ПРОФИЛЬ Alice\nОрбы: 150"
	base := MessageID(text, testTimestamp)
	if shifted := MessageID(text, testTimestamp.Add(time.Second)); shifted == base {
		t.Error("expected different message ID for different timestamp")
	}
	if other := MessageID("ПРОФИЛЬ Bob\nОрбы: 150", testTimestamp); other == base {
		t.Error("expected different message ID for different text")
	}
}

func TestProcessProfileFirstSighting(t *testing.T) {
	e, repo := testEngine(t)

	processText(t, e, "ПРОФИЛЬ Alice\nОрбы: 150")

	checkBalances(t, repo, "Alice", common.GameGDCards, "150", "0", "0")
}

func TestProcessProfileDelta(t *testing.T) {
	e, repo := testEngine(t)

	processText(t, e, "ПРОФИЛЬ Alice\nОрбы: 150")
	processText(t, e, "ПРОФИЛЬ Alice\nОрбы: 200")

	// Delta of 50 at coefficient 2
	checkBalances(t, repo, "Alice", common.GameGDCards, "200", "0", "100")
}

func TestProcessAccrual(t *testing.T) {
	e, repo := testEngine(t)

	processText(t, e, "🃏 НОВАЯ КАРТА 🃏\nИгрок: Bob\nОчки: +50")

	checkBalances(t, repo, "Bob", common.GameGDCards, "0", "50", "100")
}

func TestProcessKarma(t *testing.T) {
	e, repo := testEngine(t)

	processText(t, e, "Лайк! Вы повысили рейтинг пользователя Carol")

	checkBalances(t, repo, "Carol", common.GameShmalalaKarma, "0", "1", "10")
}

func TestProcessMafiaGameEnd(t *testing.T) {
	e, repo := testEngine(t)

	processText(t, e, "Игра окончена!\nПобедители:\nAlice - Мафия\nBob - Дон\n")

	// Reward of 10 at coefficient 15 for each winner
	checkBalances(t, repo, "Alice", common.GameTrueMafia, "0", "10", "150")
	checkBalances(t, repo, "Bob", common.GameTrueMafia, "0", "10", "150")
}

func TestProcessBunkerGameEnd(t *testing.T) {
	e, repo := testEngine(t)

	processText(t, e, "Прошли в бункер:\n1. Dan\n2. Eve\n")

	// Reward of 30 at coefficient 20
	checkBalances(t, repo, "Dan", common.GameBunkerRP, "0", "30", "600")
	checkBalances(t, repo, "Eve", common.GameBunkerRP, "0", "30", "600")
}

func TestProcessExactlyOnce(t *testing.T) {
	e, repo := testEngine(t)
	text := "🃏 НОВАЯ КАРТА 🃏\nИгрок: Bob\nОчки: +50"

	processText(t, e, text)
	processText(t, e, text)

	// The replay is acknowledged without a second application
	checkBalances(t, repo, "Bob", common.GameGDCards, "0", "50", "100")
	if !isProcessed(t, repo, MessageID(text, testTimestamp)) {
		t.Error("expected message to be marked processed")
	}
}

func TestProcessDistinctTimestampsApplyTwice(t *testing.T) {
	e, repo := testEngine(t)
	text := "🃏 НОВАЯ КАРТА 🃏\nИгрок: Bob\nОчки: +50"

	processText(t, e, text)
	err := e.Process(
		context.Background(),
		text,
		testTimestamp.Add(time.Minute),
	)
	if err != nil {
		t.Fatalf("failed to process message: %v", err)
	}

	// Identical text at a different timestamp is a distinct message
	checkBalances(t, repo, "Bob", common.GameGDCards, "0", "100", "200")
}

func TestProcessUnknownTextMarkedProcessed(t *testing.T) {
	e, repo := testEngine(t)
	text := "hello world"

	processText(t, e, text)

	if !isProcessed(t, repo, MessageID(text, testTimestamp)) {
		t.Error("expected unknown message to be marked processed")
	}
	err := repo.View(func(txn *badger.Txn) error {
		user, err := repo.GetUser(txn, "hello")
		if err != nil {
			return err
		}
		if user != nil {
			t.Error("expected no user rows for unknown message")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read user: %v", err)
	}
}

func TestProcessParseFailure(t *testing.T) {
	e, repo := testEngine(t)
	// Classifies as a profile but the orb balance is not an integer
	text := "ПРОФИЛЬ Alice\nОрбы: много"

	err := e.Process(context.Background(), text, testTimestamp)
	if err == nil {
		t.Fatal("expected error for unparseable message")
	}
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessError, got %T", err)
	}
	if procErr.Kind != ParseFailed {
		t.Errorf("expected kind %s, got %s", ParseFailed, procErr.Kind)
	}
	if procErr.Retryable() {
		t.Error("expected parse failure to be non-retryable")
	}
	var parseErr *parse.Error
	if !errors.As(err, &parseErr) {
		t.Errorf("expected wrapped *parse.Error, got %T", procErr.Err)
	}
	// A failed message stays unmarked so a corrected pipeline can replay it
	if isProcessed(t, repo, MessageID(text, testTimestamp)) {
		t.Error("expected failed message to stay unprocessed")
	}
}

func TestProcessUnknownGameCoefficient(t *testing.T) {
	e, repo := testEngineWithCoefficients(
		t,
		map[common.Game]decimal.Decimal{
			common.GameShmalala: decimal.NewFromInt(1),
		},
	)
	text := "ПРОФИЛЬ Alice\nОрбы: 150"

	err := e.Process(context.Background(), text, testTimestamp)
	if err == nil {
		t.Fatal("expected error for missing coefficient")
	}
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessError, got %T", err)
	}
	if procErr.Kind != UnknownGame {
		t.Errorf("expected kind %s, got %s", UnknownGame, procErr.Kind)
	}
	var unknownGameErr *coeff.UnknownGameError
	if !errors.As(err, &unknownGameErr) {
		t.Errorf("expected wrapped *coeff.UnknownGameError, got %T", procErr.Err)
	}

	// The failed transaction must leave no partial state behind
	err = repo.View(func(txn *badger.Txn) error {
		user, err := repo.GetUser(txn, "Alice")
		if err != nil {
			return err
		}
		if user != nil {
			t.Error("expected no user row after failed processing")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read user: %v", err)
	}
	if isProcessed(t, repo, MessageID(text, testTimestamp)) {
		t.Error("expected failed message to stay unprocessed")
	}
}

func TestProcessCancelledContext(t *testing.T) {
	e, repo := testEngine(t)
	text := "ПРОФИЛЬ Alice\nОрбы: 150"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Process(ctx, text, testTimestamp)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("expected *ProcessError, got %T", err)
	}
	if procErr.Kind != Cancelled {
		t.Errorf("expected kind %s, got %s", Cancelled, procErr.Kind)
	}
	if !procErr.Retryable() {
		t.Error("expected cancellation to be retryable")
	}
	if isProcessed(t, repo, MessageID(text, testTimestamp)) {
		t.Error("expected cancelled message to stay unprocessed")
	}
}

func TestSubscribeReceivesCommittedUpdates(t *testing.T) {
	e, _ := testEngine(t)
	updates := e.Subscribe()
	text := "🃏 НОВАЯ КАРТА 🃏\nИгрок: Bob\nОчки: +50"

	processText(t, e, text)

	// Publication happens before Process returns, so the update is
	// already buffered
	select {
	case update := <-updates:
		if update.Label != "gdcards_accrual" {
			t.Errorf("expected label 'gdcards_accrual', got '%s'", update.Label)
		}
		if update.MessageID != MessageID(text, testTimestamp) {
			t.Errorf("expected message ID %s, got %s", MessageID(text, testTimestamp), update.MessageID)
		}
		if len(update.Entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(update.Entries))
		}
		if update.Entries[0].Kind != ledger.AuditAccrual {
			t.Errorf(
				"expected kind %s, got %s",
				ledger.AuditAccrual,
				update.Entries[0].Kind,
			)
		}
		if update.Entries[0].BankChange.String() != "100" {
			t.Errorf(
				"expected bank change 100, got %s",
				update.Entries[0].BankChange,
			)
		}
	default:
		t.Fatal("expected a balance update")
	}

	// A replay commits nothing and publishes nothing
	processText(t, e, text)
	select {
	case update := <-updates:
		t.Fatalf("expected no update for duplicate, got %s", update)
	default:
	}
}

func TestSubscribeSkipsUnknownText(t *testing.T) {
	e, _ := testEngine(t)
	updates := e.Subscribe()

	processText(t, e, "hello world")

	// Unknown texts commit a processed marker but change no balances
	select {
	case update := <-updates:
		t.Fatalf("expected no update for unknown text, got %s", update)
	default:
	}
}

func TestUnsubscribe(t *testing.T) {
	e, _ := testEngine(t)
	updates := e.Subscribe()

	e.Unsubscribe(updates)
	if _, ok := <-updates; ok {
		t.Error("expected closed channel after unsubscribe")
	}
}

func TestStopClosesSubscribers(t *testing.T) {
	e, _ := testEngine(t)
	first := e.Subscribe()
	second := e.Subscribe()

	e.Stop()
	if _, ok := <-first; ok {
		t.Error("expected first channel closed after stop")
	}
	if _, ok := <-second; ok {
		t.Error("expected second channel closed after stop")
	}
}

func TestProcessErrorRetryable(t *testing.T) {
	testDefs := []struct {
		kind      ProcessErrorKind
		retryable bool
	}{
		{ParseFailed, false},
		{UnknownGame, false},
		{StorageFailed, true},
		{Cancelled, true},
	}
	for _, testDef := range testDefs {
		procErr := &ProcessError{
			Kind: testDef.kind,
			Err:  errors.New("test"),
		}
		if procErr.Retryable() != testDef.retryable {
			t.Errorf(
				"%s: expected retryable %v, got %v",
				testDef.kind,
				testDef.retryable,
				procErr.Retryable(),
			)
		}
	}
}
