/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PushesTotal counts push requests by outcome (new item, enrichment,
	// conflict, pending approval).
	PushesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ets_pushes_total",
		Help: "Total number of push requests by outcome.",
	}, []string{"outcome"})

	// DedupResolutionsTotal counts deduplication resolutions by match source.
	DedupResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ets_dedup_resolutions_total",
		Help: "Total number of deduplication resolutions by match source.",
	}, []string{"source"})

	// AdapterStoreDuration observes adapter write latency per adapter type.
	AdapterStoreDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ets_adapter_store_duration_seconds",
		Help:    "Latency of storage adapter writes.",
		Buckets: prometheus.DefBuckets,
	}, []string{"adapter"})

	// AdapterStoreFailures counts failed adapter writes per adapter type.
	AdapterStoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ets_adapter_store_failures_total",
		Help: "Total number of failed storage adapter writes.",
	}, []string{"adapter"})

	// LockContention counts identity lock acquisition retries.
	LockContention = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ets_identity_lock_retries_total",
		Help: "Total number of identity lock acquisition retries.",
	})
)

// Handler returns the HTTP handler exposing the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
