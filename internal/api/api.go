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

// Package api exposes the message engine over HTTP: an ingestion endpoint
// for raw messages, a read endpoint for user balances, and a WebSocket
// stream of committed balance updates.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/blinklabs-io/bankbot/internal/engine"
	"github.com/blinklabs-io/bankbot/internal/ledger"
	"github.com/blinklabs-io/bankbot/internal/logging"
	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/websocket"
)

type Api struct {
	engine   *engine.Engine
	repo     *ledger.Repository
	upgrader websocket.Upgrader
	wsConns  map[*websocket.Conn]bool
	wsMu     sync.RWMutex
}

func New(e *engine.Engine, repo *ledger.Repository) *Api {
	a := &Api{
		engine:  e,
		repo:    repo,
		wsConns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: checkWebSocketOrigin,
		},
	}
	// The broadcaster runs until the engine stops and closes the
	// subscription
	go a.broadcastUpdates()
	return a
}

// Handler returns the route table for the ingest listener
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/messages", a.handleSubmitMessage)
	mux.HandleFunc("GET /v1/users/{name}", a.handleGetUser)
	mux.HandleFunc("GET /v1/health", a.handleHealth)
	mux.HandleFunc("GET /ws/updates", a.handleUpdateStream)
	return mux
}

func (a *Api) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(
			w,
			http.StatusBadRequest,
			fmt.Sprintf("invalid request body: %s", err),
		)
		return
	}
	// The source timestamp is part of the message identity, so the caller
	// has to supply it
	if req.Timestamp.IsZero() {
		writeError(w, http.StatusBadRequest, "missing timestamp")
		return
	}
	err := a.engine.Process(r.Context(), req.Text, req.Timestamp)
	if err != nil {
		var procErr *engine.ProcessError
		if errors.As(err, &procErr) {
			if procErr.Retryable() {
				writeError(
					w,
					http.StatusServiceUnavailable,
					procErr.Kind.String(),
				)
			} else {
				writeError(
					w,
					http.StatusUnprocessableEntity,
					procErr.Kind.String(),
				)
			}
			return
		}
		logging.GetLogger().
			Errorw("failed to process message", "error", err)
		writeError(w, http.StatusServiceUnavailable, "processing failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) handleGetUser(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var resp *UserResponse
	err := a.repo.View(func(txn *badger.Txn) error {
		user, err := a.repo.GetUser(txn, name)
		if err != nil {
			return err
		}
		if user == nil {
			return nil
		}
		botBalances, err := a.repo.ListBotBalances(txn, name)
		if err != nil {
			return err
		}
		resp = &UserResponse{
			Name:        user.Name,
			BankBalance: user.BankBalance,
			BotBalances: make([]BotBalanceResponse, 0, len(botBalances)),
		}
		for _, botBalance := range botBalances {
			resp.BotBalances = append(resp.BotBalances, BotBalanceResponse{
				Game:              botBalance.Game,
				LastBalance:       botBalance.LastBalance,
				CurrentBotBalance: botBalance.CurrentBotBalance,
			})
		}
		return nil
	})
	if err != nil {
		logging.GetLogger().
			Errorw("failed to read user", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read user")
		return
	}
	if resp == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJson(w, http.StatusOK, resp)
}

func (a *Api) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.GetLogger().
			Errorw("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJson(w, status, ErrorResponse{Error: msg})
}
