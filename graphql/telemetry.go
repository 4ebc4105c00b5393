// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package graphql

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const telemetryPrefix = "zombiezen.com/go/graphql-request/"

// Measures recorded by DocumentCache.
var (
	CacheLookups = stats.Int64(
		telemetryPrefix+"cache_lookups",
		"Number of document cache lookups",
		stats.UnitDimensionless,
	)
	ParseLatency = stats.Float64(
		telemetryPrefix+"parse_latency",
		"Time spent parsing documents that were not in the cache",
		stats.UnitMilliseconds,
	)
)

// KeyCacheResult is the outcome of a document cache lookup: "hit", "miss",
// or "shared" for a miss that waited on a concurrent parse of the same input.
var KeyCacheResult = tag.MustNewKey("graphql_cache_result")

const (
	cacheHit    = "hit"
	cacheMiss   = "miss"
	cacheShared = "shared"
)

// Views for the measures above.
var (
	CacheLookupsView = &view.View{
		Name:        telemetryPrefix + "cache_lookups",
		Description: "Count of document cache lookups by result",
		Measure:     CacheLookups,
		TagKeys:     []tag.Key{KeyCacheResult},
		Aggregation: view.Count(),
	}
	ParseLatencyView = &view.View{
		Name:        telemetryPrefix + "parse_latency",
		Description: "Distribution of document parse latency",
		Measure:     ParseLatency,
		Aggregation: view.Distribution(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 50, 100),
	}
)

// DefaultViews is the set of views to register to collect cache telemetry.
var DefaultViews = []*view.View{
	CacheLookupsView,
	ParseLatencyView,
}
