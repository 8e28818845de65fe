package hpack

import (
	"context"
	"reflect"
	"testing"

	"golang.org/x/sync/errgroup"
)

// A Context is not safe for concurrent use by multiple goroutines (its
// dynamic table is unsynchronized state, like the teacher's Encoder and
// Decoder). Independent Context values, one per goroutine, are the
// supported concurrency model — this test runs several encode/decode
// cycles in parallel to demonstrate that isolation holds.
func TestIndependentContextsRunConcurrently(t *testing.T) {
	g, _ := errgroup.WithContext(context.Background())

	streams := [][]HeaderField{
		{{Header{":method", "GET"}, Indexed}, {Header{":path", "/"}, Indexed}},
		{{Header{":method", "POST"}, Indexed}, {Header{"content-type", "application/json"}, Indexed}},
		{{Header{"x-request-id", "a"}, NotIndexed}, {Header{"authorization", "s3cr3t"}, NeverIndexed}},
	}

	for _, fields := range streams {
		fields := fields
		g.Go(func() error {
			encoder := NewContext(4096, nil)
			decoder := NewContext(4096, nil)

			block := encoder.EncodeBlock(fields)
			decoded, err := decoder.DecodeBlock(block)
			if err != nil {
				return err
			}
			if !reflect.DeepEqual(decoded, fields) {
				t.Errorf("concurrent round trip mismatch: got %+v, want %+v", decoded, fields)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error from concurrent contexts: %v", err)
	}
}
