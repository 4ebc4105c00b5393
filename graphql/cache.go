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
	"context"
	"io"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phuslu/log"
	"github.com/zeebo/xxh3"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"go.opencensus.io/trace"
	"golang.org/x/sync/singleflight"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-request/gqlang"
)

const (
	defaultCacheShards = 16
	minShardSize       = 64
)

// DocumentCache memoizes the outcome of parsing request documents. Both
// successes and syntax errors are cached, so a repeated malformed document
// gets back the identical error value without being parsed again.
//
// Entries are evicted least recently used first. A DocumentCache is safe to
// use from multiple goroutines.
type DocumentCache struct {
	opts   gqlang.ParseOptions
	shards []*lru.Cache[string, *cacheEntry]
	group  singleflight.Group
	parse  func(*gqlang.Source, gqlang.ParseOptions) (*gqlang.Document, error)
	log    *log.Logger
	nshard int
}

type cacheEntry struct {
	doc *gqlang.Document
	err error
}

// A CacheOption configures a DocumentCache.
type CacheOption func(*DocumentCache)

// WithLogger sets the logger that the cache reports parses to. By default,
// the cache does not log.
func WithLogger(logger *log.Logger) CacheOption {
	return func(c *DocumentCache) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithShards sets the number of independently locked partitions of the cache.
// It is capped at the maximum size. By default, a cache has up to 16 shards
// but never so many that a shard holds fewer than 64 documents.
func WithShards(n int) CacheOption {
	return func(c *DocumentCache) {
		c.nshard = n
	}
}

// NewDocumentCache returns a cache that holds at most maxSize documents
// parsed with the given options.
func NewDocumentCache(maxSize int, opts gqlang.ParseOptions, options ...CacheOption) (*DocumentCache, error) {
	if maxSize < 1 {
		return nil, xerrors.Errorf("new document cache: maximum size %d must be positive", maxSize)
	}
	c := &DocumentCache{
		opts:  opts,
		parse: gqlang.ParseSource,
		log: &log.Logger{
			Level:  log.ErrorLevel,
			Writer: &log.IOWriter{Writer: io.Discard},
		},
	}
	for _, opt := range options {
		opt(c)
	}
	if c.nshard == 0 {
		c.nshard = min(defaultCacheShards, maxSize/minShardSize)
	}
	if c.nshard < 1 {
		c.nshard = 1
	}
	if c.nshard > maxSize {
		c.nshard = maxSize
	}
	c.shards = make([]*lru.Cache[string, *cacheEntry], c.nshard)
	for i := range c.shards {
		// Spread the remainder over the first shards so the capacities sum to
		// maxSize.
		size := maxSize / c.nshard
		if i < maxSize%c.nshard {
			size++
		}
		var err error
		c.shards[i], err = lru.New[string, *cacheEntry](size)
		if err != nil {
			return nil, xerrors.Errorf("new document cache: %w", err)
		}
	}
	return c, nil
}

// Parse returns the result of parsing input with the cache's options.
func (c *DocumentCache) Parse(ctx context.Context, input string) (*gqlang.Document, error) {
	ctx, span := trace.StartSpan(ctx, "graphql.DocumentCache.Parse")
	defer span.End()
	span.AddAttributes(trace.Int64Attribute("graphql.document_size", int64(len(input))))

	shard := c.shard(input)
	if ent, ok := shard.Get(input); ok {
		c.record(ctx, span, cacheHit)
		return ent.finish(span)
	}
	// Do only runs the function in one of the concurrent callers. The others
	// keep the initial result.
	result := cacheShared
	v, _, _ := c.group.Do(input, func() (interface{}, error) {
		// Another caller may have finished between the lookup and here.
		if ent, ok := shard.Get(input); ok {
			result = cacheHit
			return ent, nil
		}
		result = cacheMiss
		start := time.Now()
		doc, err := c.parse(gqlang.NewSource(input, ""), c.opts)
		elapsed := time.Since(start)
		stats.Record(ctx, ParseLatency.M(float64(elapsed)/float64(time.Millisecond)))
		c.log.Debug().
			Int("size", len(input)).
			Dur("elapsed", elapsed).
			Err(err).
			Msg("parsed document")
		ent := &cacheEntry{doc: doc, err: err}
		shard.Add(input, ent)
		return ent, nil
	})
	c.record(ctx, span, result)
	return v.(*cacheEntry).finish(span)
}

// Len returns the number of documents in the cache.
func (c *DocumentCache) Len() int {
	n := 0
	for _, shard := range c.shards {
		n += shard.Len()
	}
	return n
}

// Purge removes every document from the cache.
func (c *DocumentCache) Purge() {
	for _, shard := range c.shards {
		shard.Purge()
	}
}

func (c *DocumentCache) shard(input string) *lru.Cache[string, *cacheEntry] {
	return c.shards[xxh3.HashString(input)%uint64(len(c.shards))]
}

func (c *DocumentCache) record(ctx context.Context, span *trace.Span, result string) {
	span.AddAttributes(trace.StringAttribute("graphql.cache_result", result))
	err := stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyCacheResult, result)}, CacheLookups.M(1))
	if err != nil {
		c.log.Error().Err(err).Msg("recording cache lookup")
	}
}

func (ent *cacheEntry) finish(span *trace.Span) (*gqlang.Document, error) {
	if ent.err != nil {
		span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: ent.err.Error()})
	}
	return ent.doc, ent.err
}
