// Copyright 2025 Blink Labs Software
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

package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/bankbot/internal/common"
	"github.com/blinklabs-io/bankbot/internal/config"
	"github.com/blinklabs-io/bankbot/internal/logging"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const fingerprintKey = "config_fingerprint"

type Storage struct {
	db *badger.DB
}

var globalStorage = &Storage{}

func (s *Storage) Load() error {
	cfg := config.GetConfig()
	badgerOpts := badger.DefaultOptions(cfg.Storage.Directory).
		WithLogger(NewBadgerLogger()).
		// The default INFO logging is a bit verbose
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(badgerOpts)
	// TODO: setup automatic GC for Badger
	if err != nil {
		return err
	}
	s.db = db
	if err := s.compareFingerprint(); err != nil {
		return err
	}
	return nil
}

// NewInMemory opens a standalone in-memory store. It goes through the same
// fingerprint guard as an on-disk store.
func NewInMemory() (*Storage, error) {
	badgerOpts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(NewBadgerLogger()).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	s := &Storage{db: db}
	if err := s.compareFingerprint(); err != nil {
		return nil, err
	}
	return s, nil
}

// compareFingerprint refuses to open a store written under a different
// message ID scheme or game set. Either mismatch would silently corrupt the
// exactly-once contract, so failing at startup is the only safe behavior.
func (s *Storage) compareFingerprint() error {
	games := make([]string, 0, len(common.Games()))
	for _, game := range common.Games() {
		games = append(games, game.String())
	}
	fingerprint := fmt.Sprintf(
		"hash=%s,games=%s",
		common.MessageIDScheme,
		strings.Join(games, ","),
	)
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fingerprintKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				if err := txn.Set([]byte(fingerprintKey), []byte(fingerprint)); err != nil {
					return err
				}
				return nil
			} else {
				return err
			}
		}
		err = item.Value(func(v []byte) error {
			if string(v) != fingerprint {
				return fmt.Errorf(
					"config fingerprint in DB doesn't match current config: %s",
					v,
				)
			}
			return nil
		})
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// Update runs fn inside a read-write transaction. Badger provides
// serializable snapshot isolation: when concurrent transactions touch the
// same keys, all but one fail with badger.ErrConflict and the losers retry.
func (s *Storage) Update(fn func(txn *badger.Txn) error) error {
	return s.db.Update(fn)
}

// View runs fn inside a read-only transaction
func (s *Storage) View(fn func(txn *badger.Txn) error) error {
	return s.db.View(fn)
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func GetStorage() *Storage {
	return globalStorage
}

// BadgerLogger is a wrapper type to give our logger the expected interface
type BadgerLogger struct {
	logger *zap.SugaredLogger
}

func NewBadgerLogger() *BadgerLogger {
	return &BadgerLogger{
		logger: logging.GetLogger(),
	}
}

func (b *BadgerLogger) Infof(msg string, args ...any) {
	b.logger.Infof(msg, args...)
}

func (b *BadgerLogger) Warningf(msg string, args ...any) {
	b.logger.Warnf(msg, args...)
}

func (b *BadgerLogger) Debugf(msg string, args ...any) {
	b.logger.Debugf(msg, args...)
}

func (b *BadgerLogger) Errorf(msg string, args ...any) {
	b.logger.Errorf(msg, args...)
}
