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
	"net/http"
	"strings"

	"github.com/blinklabs-io/bankbot/internal/logging"
	"github.com/gorilla/websocket"
)

// checkWebSocketOrigin validates WebSocket connection origins.
// Allows same-origin requests and localhost connections for development.
func checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // Allow requests without Origin header (non-browser clients)
	}

	// Allow localhost connections for development
	if strings.HasPrefix(origin, "http://localhost") ||
		strings.HasPrefix(origin, "http://127.0.0.1") ||
		strings.HasPrefix(origin, "https://localhost") ||
		strings.HasPrefix(origin, "https://127.0.0.1") {
		return true
	}

	// Parse origin URL to extract host for exact comparison
	// This prevents attacks where malicious origins contain the host as substring
	// (e.g., "evil-example.com" or "example.com.attacker.com")
	originHost := extractHost(origin)
	if originHost == "" {
		return false
	}

	// Check if origin host exactly matches the request host (same-origin)
	host := r.Host
	if host == "" {
		host = r.URL.Host
	}
	// Strip port from request host for comparison if origin doesn't have port
	if !strings.Contains(originHost, ":") {
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}
	}
	return originHost == host
}

// extractHost extracts the host from a URL string
func extractHost(urlStr string) string {
	// Remove scheme prefix
	if idx := strings.Index(urlStr, "://"); idx != -1 {
		urlStr = urlStr[idx+3:]
	}
	// Remove path
	if idx := strings.Index(urlStr, "/"); idx != -1 {
		urlStr = urlStr[:idx]
	}
	return urlStr
}

// handleUpdateStream handles WebSocket connections for balance update
// streaming
func (a *Api) handleUpdateStream(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLogger()

	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	// Register connection
	a.wsMu.Lock()
	a.wsConns[conn] = true
	a.wsMu.Unlock()

	logger.Debugw("websocket client connected", "remote", conn.RemoteAddr())

	// Keep connection alive and handle disconnection
	defer func() {
		a.wsMu.Lock()
		delete(a.wsConns, conn)
		a.wsMu.Unlock()
		_ = conn.Close()
		logger.Debugw(
			"websocket client disconnected",
			"remote", conn.RemoteAddr(),
		)
	}()

	// Read messages (for ping/pong and close handling)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// broadcastUpdates subscribes to balance updates and broadcasts them to
// WebSocket clients. It exits when the engine stops and closes the
// subscription.
func (a *Api) broadcastUpdates() {
	logger := logging.GetLogger()
	updates := a.engine.Subscribe()

	for update := range updates {
		var failedConns []*websocket.Conn

		a.wsMu.RLock()
		for conn := range a.wsConns {
			if err := conn.WriteJSON(update); err != nil {
				logger.Debugw(
					"failed to send websocket update",
					"error", err,
					"remote", conn.RemoteAddr(),
				)
				failedConns = append(failedConns, conn)
			}
		}
		a.wsMu.RUnlock()

		// Remove failed connections outside of the read lock
		if len(failedConns) > 0 {
			a.wsMu.Lock()
			for _, conn := range failedConns {
				delete(a.wsConns, conn)
				_ = conn.Close()
			}
			a.wsMu.Unlock()
		}
	}
}

// WebSocketClientCount returns the number of connected WebSocket clients
func (a *Api) WebSocketClientCount() int {
	a.wsMu.RLock()
	defer a.wsMu.RUnlock()
	return len(a.wsConns)
}
