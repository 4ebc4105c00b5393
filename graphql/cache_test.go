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
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"
	"golang.org/x/sync/errgroup"
	"zombiezen.com/go/graphql-request/gqlang"
)

// newCountingCache returns a cache whose parses are counted in n.
func newCountingCache(t testing.TB, maxSize int, n *int32, options ...CacheOption) *DocumentCache {
	t.Helper()
	c, err := NewDocumentCache(maxSize, gqlang.ParseOptions{}, options...)
	require.NoError(t, err)
	c.parse = func(src *gqlang.Source, opts gqlang.ParseOptions) (*gqlang.Document, error) {
		atomic.AddInt32(n, 1)
		return gqlang.ParseSource(src, opts)
	}
	return c
}

func TestDocumentCacheIdempotent(t *testing.T) {
	ctx := context.Background()
	var n int32
	c := newCountingCache(t, 10, &n)

	doc1, err := c.Parse(ctx, "{ user { name } }")
	require.NoError(t, err)
	doc2, err := c.Parse(ctx, "{ user { name } }")
	require.NoError(t, err)
	assert.Same(t, doc1, doc2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&n), "parse count")
	assert.Equal(t, 1, c.Len())
}

func TestDocumentCacheError(t *testing.T) {
	ctx := context.Background()
	var n int32
	c := newCountingCache(t, 10, &n)

	_, err1 := c.Parse(ctx, "{")
	require.Error(t, err1)
	_, err2 := c.Parse(ctx, "{")
	require.Error(t, err2)
	assert.Same(t, err1, err2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&n), "parse count")

	assert.Equal(t, "Syntax Error: Expected Name, found <EOF>.", err2.Error())
	pos, ok := gqlang.ErrorPosition(err2)
	require.True(t, ok)
	assert.Equal(t, gqlang.Position{Line: 1, Column: 2}, pos)
}

func TestDocumentCacheMatchesParse(t *testing.T) {
	inputs := []string{
		"{ a }",
		"query Q($x: Int = 1) { a(x: $x) @skip(if: false) { ...F } } fragment F on T { b }",
		`type Query { "desc" field(arg: [String!]!): Int }`,
		"{ a",
		"fragment on on on { on }",
	}
	opts := gqlang.ParseOptions{NoLocation: true}
	c, err := NewDocumentCache(len(inputs), opts)
	require.NoError(t, err)
	ctx := context.Background()
	for _, input := range inputs {
		want, wantErr := gqlang.ParseSource(gqlang.NewSource(input, ""), opts)
		got, err := c.Parse(ctx, input)
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty(), cmpopts.IgnoreUnexported(gqlang.Document{})); diff != "" {
			t.Errorf("Parse(ctx, %q) (-want +got):\n%s", input, diff)
		}
		if fmt.Sprint(wantErr) != fmt.Sprint(err) {
			t.Errorf("Parse(ctx, %q) error = %v; want %v", input, err, wantErr)
		}
	}
}

func TestDocumentCacheEviction(t *testing.T) {
	ctx := context.Background()
	var n int32
	c := newCountingCache(t, 2, &n, WithShards(1))
	for _, input := range []string{"{ a }", "{ b }", "{ c }"} {
		_, err := c.Parse(ctx, input)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, int32(3), atomic.LoadInt32(&n))

	// "{ a }" was least recently used.
	_, err := c.Parse(ctx, "{ a }")
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&n))
	_, err = c.Parse(ctx, "{ c }")
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&n))

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestDocumentCacheConcurrent(t *testing.T) {
	inputs := []string{"{ a }", "{ b }", "{ c", "query { d(x: 1) }"}
	var n int32
	c := newCountingCache(t, 10, &n, WithShards(1))
	ctx := context.Background()
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				input := inputs[j%len(inputs)]
				doc, err := c.Parse(ctx, input)
				if input == "{ c" {
					if err == nil {
						return fmt.Errorf("Parse(ctx, %q) did not return an error", input)
					}
					continue
				}
				if err != nil {
					return err
				}
				if doc == nil {
					return fmt.Errorf("Parse(ctx, %q) = <nil>", input)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(len(inputs)), atomic.LoadInt32(&n), "parse count")
}

func TestDocumentCacheSmallSize(t *testing.T) {
	ctx := context.Background()
	var n int32
	c := newCountingCache(t, 2, &n)
	inputs := []string{"{ a }", "{ b }"}
	for i := 0; i < 3; i++ {
		for _, input := range inputs {
			_, err := c.Parse(ctx, input)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, int32(len(inputs)), atomic.LoadInt32(&n), "parse count")
}

func TestDocumentCacheShardCount(t *testing.T) {
	tests := []struct {
		maxSize int
		options []CacheOption
		want    int
	}{
		{maxSize: 1, want: 1},
		{maxSize: 63, want: 1},
		{maxSize: 128, want: 2},
		{maxSize: 1000, want: 15},
		{maxSize: 100000, want: 16},
		{maxSize: 2, options: []CacheOption{WithShards(4)}, want: 2},
		{maxSize: 10, options: []CacheOption{WithShards(4)}, want: 4},
		{maxSize: 10, options: []CacheOption{WithShards(-1)}, want: 1},
	}
	for _, test := range tests {
		c, err := NewDocumentCache(test.maxSize, gqlang.ParseOptions{}, test.options...)
		require.NoError(t, err)
		assert.Len(t, c.shards, test.want, "maxSize = %d", test.maxSize)
	}
}

func TestNewDocumentCacheInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := NewDocumentCache(size, gqlang.ParseOptions{})
		assert.Error(t, err, "NewDocumentCache(%d, ...)", size)
	}
}

func TestDocumentCacheLogging(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := &log.Logger{
		Level:  log.DebugLevel,
		Writer: &log.IOWriter{Writer: buf},
	}
	c, err := NewDocumentCache(1, gqlang.ParseOptions{}, WithLogger(logger))
	require.NoError(t, err)
	_, err = c.Parse(context.Background(), "{ a }")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "parsed document")
	assert.Contains(t, buf.String(), `"size":5`)
}

func TestDocumentCacheViews(t *testing.T) {
	require.NoError(t, view.Register(CacheLookupsView))
	defer view.Unregister(CacheLookupsView)

	c, err := NewDocumentCache(1, gqlang.ParseOptions{})
	require.NoError(t, err)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.Parse(ctx, "{ a }")
		require.NoError(t, err)
	}

	rows, err := view.RetrieveData(CacheLookupsView.Name)
	require.NoError(t, err)
	got := make(map[string]int64)
	for _, row := range rows {
		for _, tg := range row.Tags {
			if tg.Key == KeyCacheResult {
				got[tg.Value] = row.Data.(*view.CountData).Value
			}
		}
	}
	want := map[string]int64{cacheMiss: 1, cacheHit: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lookups by result (-want +got):\n%s", diff)
	}
}

func TestDocumentCacheConcurrentViews(t *testing.T) {
	require.NoError(t, view.Register(CacheLookupsView))
	defer view.Unregister(CacheLookupsView)

	var n int32
	c := newCountingCache(t, 10, &n)
	parse := c.parse
	c.parse = func(src *gqlang.Source, opts gqlang.ParseOptions) (*gqlang.Document, error) {
		// Hold the parse open so that other callers wait on it.
		time.Sleep(20 * time.Millisecond)
		return parse(src, opts)
	}
	const callers = 8
	ctx := context.Background()
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			_, err := c.Parse(ctx, "{ a }")
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, int32(1), atomic.LoadInt32(&n), "parse count")

	rows, err := view.RetrieveData(CacheLookupsView.Name)
	require.NoError(t, err)
	got := make(map[string]int64)
	var total int64
	for _, row := range rows {
		for _, tg := range row.Tags {
			if tg.Key == KeyCacheResult {
				count := row.Data.(*view.CountData).Value
				got[tg.Value] = count
				total += count
			}
		}
	}
	assert.Equal(t, int64(1), got[cacheMiss], "misses")
	assert.Equal(t, int64(callers), total, "lookups")
}

func BenchmarkDocumentCache(b *testing.B) {
	const input = "query Q($id: ID!) { node(id: $id) { id ... on User { name friends(first: 10) { edges { node { name } } } } } }"
	c, err := NewDocumentCache(10, gqlang.ParseOptions{})
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.SetBytes(int64(len(input)))
	b.Run("Hit", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := c.Parse(ctx, input); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("Miss", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			c.Purge()
			if _, err := c.Parse(ctx, input); err != nil {
				b.Fatal(err)
			}
		}
	})
}
