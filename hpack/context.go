package hpack

import "bytes"

// representation prefix bits (RFC 7541 §6), tested high-bit first.
const (
	prefixIndexed          = 0x80 // 1xxxxxxx
	prefixLiteralIncr      = 0x40 // 01xxxxxx
	prefixSizeUpdate       = 0x20 // 001xxxxx
	prefixLiteralNever     = 0x10 // 0001xxxx
	prefixLiteralNotIndexd = 0x00 // 0000xxxx
)

// blockState tracks where in a header block the decoder is, to enforce RFC
// 7541 §4.2: dynamic-table size updates are only valid at the very start of
// a block, and at most two may appear.
type blockState uint8

const (
	awaitingSizeUpdate blockState = iota
	bodyOpen
	blockDone
)

// Context pairs one combinedTable (static + dynamic) with encode and decode
// entry points, per spec §3/§4.4. A single instance may drive both
// directions of traffic for testing (spec §8's round-trip property), though
// a real connection typically holds one Context per direction.
type Context struct {
	table           *combinedTable
	maxCapacity     uint32
	maxStringLength int
	huffman         HuffmanCodec
}

// defaultMaxStringLength bounds a single decoded string, defending against
// pathological input (spec §5). 0 passed to decodeString disables the
// bound; this default is generous but finite.
const defaultMaxStringLength = 16 * 1024 * 1024

// NewContext creates a Context with the given initial dynamic-table
// capacity. A nil huffman codec defaults to IdentityHuffmanCodec (spec §1:
// the real Huffman table is an external concern).
func NewContext(initialCapacity uint32, huffman HuffmanCodec) *Context {
	if huffman == nil {
		huffman = IdentityHuffmanCodec{}
	}
	return &Context{
		table:           newCombinedTable(initialCapacity),
		maxCapacity:     initialCapacity,
		maxStringLength: defaultMaxStringLength,
		huffman:         huffman,
	}
}

// SetMaxCapacity sets the protocol-negotiated ceiling a dynamic-table size
// update must not exceed. It does not itself change the operative capacity.
func (c *Context) SetMaxCapacity(m uint32) {
	c.maxCapacity = m
}

// SetMaxStringLength overrides the maximum length of a single decoded
// string. Zero disables the bound.
func (c *Context) SetMaxStringLength(n int) {
	c.maxStringLength = n
}

// CurrentCapacity returns the dynamic table's operative byte budget.
func (c *Context) CurrentCapacity() uint32 {
	return c.table.capacity()
}

// Occupancy returns the dynamic table's current total entry size in bytes.
func (c *Context) Occupancy() uint32 {
	return c.table.occupancy()
}

// DecodeBlock decodes one header block (spec §4.4's Decode algorithm). On
// success every header in the block was emitted in input order; on failure
// no partial result is returned — decode failures are fatal for the whole
// block (spec §7).
func (c *Context) DecodeBlock(p []byte) ([]HeaderField, error) {
	cur := newCursor(p)
	state := awaitingSizeUpdate
	sizeUpdates := 0

	var out []HeaderField

	for !cur.atEnd() {
		lead, _ := cur.peek()

		switch {
		case lead&prefixIndexed != 0:
			state = bodyOpen
			hf, err := c.decodeIndexed(&cur)
			if err != nil {
				return nil, err
			}
			out = append(out, hf)

		case lead&prefixLiteralIncr != 0:
			state = bodyOpen
			hf, err := c.decodeLiteral(&cur, 6, Indexed)
			if err != nil {
				return nil, err
			}
			c.table.add(hf.Header)
			out = append(out, hf)

		case lead&prefixSizeUpdate != 0:
			if state == bodyOpen {
				return nil, wrapErr("decodeBlock", ErrCompressionError)
			}
			if sizeUpdates >= 2 {
				return nil, wrapErr("decodeBlock", ErrCompressionError)
			}
			if err := c.decodeSizeUpdate(&cur); err != nil {
				return nil, err
			}
			sizeUpdates++

		case lead&prefixLiteralNever != 0:
			state = bodyOpen
			hf, err := c.decodeLiteral(&cur, 4, NeverIndexed)
			if err != nil {
				return nil, err
			}
			out = append(out, hf)

		default:
			state = bodyOpen
			hf, err := c.decodeLiteral(&cur, 4, NotIndexed)
			if err != nil {
				return nil, err
			}
			out = append(out, hf)
		}
	}

	return out, nil
}

func (c *Context) decodeIndexed(cur *cursor) (HeaderField, error) {
	index, err := decodeInteger(cur, 7)
	if err != nil {
		return HeaderField{}, err
	}
	if index == 0 {
		return HeaderField{}, wrapIndexErr("decodeIndexed", 0, ErrInvalidIndex)
	}

	h, ok := c.table.get(int(index))
	if !ok {
		return HeaderField{}, wrapIndexErr("decodeIndexed", int(index), ErrInvalidIndex)
	}
	return HeaderField{Header: h, Directive: Indexed}, nil
}

// decodeLiteral decodes any of the three literal representations: they
// differ only in the index-resolution prefix width and the directive the
// caller wants reported, not in the name/value decoding itself.
func (c *Context) decodeLiteral(cur *cursor, prefix uint8, directive Directive) (HeaderField, error) {
	nameIndex, err := decodeInteger(cur, prefix)
	if err != nil {
		return HeaderField{}, err
	}

	var name string
	if nameIndex == 0 {
		name, err = decodeString(cur, c.huffman, c.maxStringLength)
		if err != nil {
			return HeaderField{}, err
		}
	} else {
		h, ok := c.table.get(int(nameIndex))
		if !ok {
			return HeaderField{}, wrapIndexErr("decodeLiteral", int(nameIndex), ErrInvalidIndex)
		}
		name = h.Name
	}

	value, err := decodeString(cur, c.huffman, c.maxStringLength)
	if err != nil {
		return HeaderField{}, err
	}

	return HeaderField{Header: Header{Name: name, Value: value}, Directive: directive}, nil
}

func (c *Context) decodeSizeUpdate(cur *cursor) error {
	size, err := decodeInteger(cur, 5)
	if err != nil {
		return err
	}
	if size > uint64(c.maxCapacity) {
		return wrapErr("decodeSizeUpdate", ErrCompressionError)
	}
	c.table.setCapacity(uint32(size))
	return nil
}

// EncodeBlock encodes an ordered list of header fields into one header
// block (spec §4.4's Encode algorithm). The encoder performs linear scans
// of the static and dynamic tables to choose the most compact
// representation that respects each field's directive; this is an
// implementation choice the decoder does not need to match exactly.
func (c *Context) EncodeBlock(fields []HeaderField) []byte {
	var buf bytes.Buffer

	for _, hf := range fields {
		c.encodeHeaderField(&buf, hf)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}

func (c *Context) encodeHeaderField(buf *bytes.Buffer, hf HeaderField) {
	index, exact := c.table.find(hf.Name, hf.Value)

	// An indexed representation is only usable when the directive actually
	// permits referencing the table (an indexed match found by chance for
	// a NeverIndexed field must still be written out as a literal).
	if exact && hf.Directive == Indexed {
		encodeInteger(buf, uint64(index), 7, prefixIndexed)
		return
	}

	prefixFlags := prefixLiteralNotIndexd
	prefixWidth := uint8(4)
	switch hf.Directive {
	case Indexed:
		prefixFlags, prefixWidth = prefixLiteralIncr, 6
	case NeverIndexed:
		prefixFlags, prefixWidth = prefixLiteralNever, 4
	}

	if index > 0 {
		encodeInteger(buf, uint64(index), prefixWidth, byte(prefixFlags))
	} else {
		buf.WriteByte(byte(prefixFlags))
		encodeString(buf, hf.Name, c.huffman)
	}
	encodeString(buf, hf.Value, c.huffman)

	if hf.Directive == Indexed {
		c.table.add(Header{Name: hf.Name, Value: hf.Value})
	}
}
