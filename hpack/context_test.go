package hpack

import (
	"reflect"
	"testing"
)

func TestContextDecodeBlockIndexedPair(t *testing.T) {
	c := NewContext(4096, nil)

	got, err := c.DecodeBlock([]byte{0x82, 0x84})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []HeaderField{
		{Header{":method", "GET"}, Indexed},
		{Header{":path", "/"}, Indexed},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeBlock([0x82, 0x84]) = %+v, want %+v", got, want)
	}
}

func TestContextDecodeBlockLiteralWithIncrementalIndexing(t *testing.T) {
	c := NewContext(4096, nil)

	block := []byte{0x42, 0x03, 'G', 'E', 'T', 0x4f, 0x03, 's', 'e', 't'}
	got, err := c.DecodeBlock(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []HeaderField{
		{Header{":method", "GET"}, Indexed},
		{Header{"accept-charset", "set"}, Indexed},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeBlock(literal incremental) = %+v, want %+v", got, want)
	}

	// Both literals carried the incremental-indexing directive, so both
	// should now be in the dynamic table, newest first.
	if c.Occupancy() == 0 {
		t.Fatal("expected dynamic table to have grown")
	}
	h, ok := c.table.dynamic.get(0)
	if !ok || h != (Header{"accept-charset", "set"}) {
		t.Errorf("dynamic position 0 = %+v, %v, want {accept-charset set}, true", h, ok)
	}
	h, ok = c.table.dynamic.get(1)
	if !ok || h != (Header{":method", "GET"}) {
		t.Errorf("dynamic position 1 = %+v, %v, want {:method GET}, true", h, ok)
	}

	// A subsequent block can now reference the older of the two entries,
	// :method/GET, at combined index 63 (dynamic position 1, since
	// accept-charset/set was inserted after it and so occupies position 0,
	// combined index 62).
	got, err = c.DecodeBlock([]byte{0xbf})
	if err != nil {
		t.Fatalf("unexpected error decoding follow-up reference: %v", err)
	}
	want = []HeaderField{{Header{":method", "GET"}, Indexed}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeBlock([0xbf]) = %+v, want %+v", got, want)
	}
}

func TestContextDecodeBlockNeverIndexedLeavesTableUnchanged(t *testing.T) {
	c := NewContext(4096, nil)

	got, err := c.DecodeBlock([]byte{0x12, 0x03, 'G', 'E', 'T'})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []HeaderField{{Header{":method", "GET"}, NeverIndexed}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeBlock(never indexed) = %+v, want %+v", got, want)
	}
	if c.Occupancy() != 0 {
		t.Errorf("NeverIndexed literal must not enter the dynamic table, occupancy = %d", c.Occupancy())
	}
}

func TestContextDecodeBlockSizeUpdateThenLiteral(t *testing.T) {
	c := NewContext(4096, nil)

	block := []byte{0x3f, 0x9a, 0x0a, 0x02, 0x03, 'G', 'E', 'T'}
	got, err := c.DecodeBlock(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The update's continuation bytes are RFC 7541 §5.1's 1337 worked
	// example, applied on top of a 5-bit prefix (31) instead of being read
	// as a bare integer.
	if c.CurrentCapacity() != 1337 {
		t.Errorf("CurrentCapacity() = %d, want 1337 after size update", c.CurrentCapacity())
	}

	want := []HeaderField{{Header{":method", "GET"}, NotIndexed}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeBlock(size update + literal) = %+v, want %+v", got, want)
	}
}

func TestContextDecodeBlockRejectsSizeUpdateAfterBodyStarts(t *testing.T) {
	c := NewContext(4096, nil)

	// A size update (001xxxxx) following an indexed field is out of order
	// per RFC 7541 §4.2.
	block := []byte{0x82, 0x20}
	_, err := c.DecodeBlock(block)
	if !IsCompressionError(err) {
		t.Errorf("DecodeBlock(late size update) = %v, want ErrCompressionError", err)
	}
}

func TestContextDecodeBlockRejectsMoreThanTwoSizeUpdates(t *testing.T) {
	c := NewContext(4096, nil)

	block := []byte{0x20, 0x20, 0x20}
	_, err := c.DecodeBlock(block)
	if !IsCompressionError(err) {
		t.Errorf("DecodeBlock(three size updates) = %v, want ErrCompressionError", err)
	}
}

func TestContextDecodeBlockSizeUpdateAboveMaxCapacityRejected(t *testing.T) {
	c := NewContext(100, nil)
	c.SetMaxCapacity(100)

	_, err := c.DecodeBlock([]byte{0x3f, 0xe1, 0x01}) // attempts to set capacity to 256
	if !IsCompressionError(err) {
		t.Errorf("DecodeBlock(oversized size update) = %v, want ErrCompressionError", err)
	}
}

func TestContextDecodeBlockInvalidIndexZero(t *testing.T) {
	c := NewContext(4096, nil)
	_, err := c.DecodeBlock([]byte{0x80})
	if !IsInvalidIndex(err) {
		t.Errorf("DecodeBlock([0x80]) = %v, want ErrInvalidIndex", err)
	}
}

func TestContextDecodeBlockInvalidIndexOutOfRange(t *testing.T) {
	c := NewContext(4096, nil)
	_, err := c.DecodeBlock([]byte{0xff, 0x90, 0x01}) // references an index far beyond 61
	if !IsInvalidIndex(err) {
		t.Errorf("DecodeBlock(out of range index) = %v, want ErrInvalidIndex", err)
	}
}

func TestContextEncodeLiteralWithNewNameFixture(t *testing.T) {
	c := NewContext(4096, nil)

	got := c.EncodeBlock([]HeaderField{
		{Header{"Name", "This is 10"}, Indexed},
	})

	want := []byte{0x40, 0x04, 'N', 'a', 'm', 'e', 0x0a, 'T', 'h', 'i', 's', ' ', 'i', 's', ' ', '1', '0'}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EncodeBlock(literal new name) = %x, want %x", got, want)
	}
}

func TestContextEncodeDecodeRoundTrip(t *testing.T) {
	c := NewContext(4096, nil)

	fields := []HeaderField{
		{Header{":method", "GET"}, Indexed},
		{Header{":path", "/"}, Indexed},
		{Header{"x-request-id", "abc-123"}, Indexed},
		{Header{"authorization", "secret-token"}, NeverIndexed},
		{Header{"x-debug", "on"}, NotIndexed},
	}

	encoded := c.EncodeBlock(fields)

	decoder := NewContext(4096, nil)
	decoded, err := decoder.DecodeBlock(encoded)
	if err != nil {
		t.Fatalf("DecodeBlock of freshly encoded block failed: %v", err)
	}

	if !reflect.DeepEqual(decoded, fields) {
		t.Errorf("round trip = %+v, want %+v", decoded, fields)
	}
}

func TestContextEncodeDecodeRepeatedHeadersShareDynamicEntry(t *testing.T) {
	encoder := NewContext(4096, nil)
	decoder := NewContext(4096, nil)

	fields := []HeaderField{
		{Header{"x-custom", "same-value"}, Indexed},
		{Header{"x-custom", "same-value"}, Indexed},
	}

	encoded := encoder.EncodeBlock(fields)
	decoded, err := decoder.DecodeBlock(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(decoded, fields) {
		t.Errorf("round trip = %+v, want %+v", decoded, fields)
	}

	// The second occurrence should have encoded as a fully indexed
	// reference into the entry the first occurrence just inserted, not a
	// second literal, so only one entry's worth of occupancy is spent.
	if encoder.Occupancy() != entrySize(Header{"x-custom", "same-value"}) {
		t.Errorf("occupancy = %d, want a single entry's worth (no duplicate insertion)", encoder.Occupancy())
	}
}

func TestContextDynamicTableOccupancyNeverExceedsCapacity(t *testing.T) {
	c := NewContext(128, nil)

	for i := 0; i < 50; i++ {
		c.DecodeBlock([]byte{0x40, 0x04, 'n', 'a', 'm', 'e', 0x05, 'v', 'a', 'l', 'u', 'e'})
		if c.Occupancy() > c.CurrentCapacity() {
			t.Fatalf("occupancy %d exceeded capacity %d after %d insertions", c.Occupancy(), c.CurrentCapacity(), i)
		}
	}
}
