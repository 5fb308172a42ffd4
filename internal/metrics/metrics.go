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

// Package metrics registers the engine's Prometheus collectors on the
// default registry; the debug listener serves them
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankbot_messages_processed_total",
		Help: "Total number of messages processed, by classification label",
	}, []string{"label"})

	MessagesDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankbot_messages_duplicate_total",
		Help: "Total number of duplicate messages skipped",
	})

	MessagesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankbot_messages_failed_total",
		Help: "Total number of messages that failed processing, by error kind",
	}, []string{"kind"})

	TxnConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bankbot_txn_conflicts_total",
		Help: "Total number of transaction conflicts that were retried",
	})

	ProcessDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bankbot_process_duration_seconds",
		Help:    "Time spent processing one message",
		Buckets: prometheus.DefBuckets,
	})
)
