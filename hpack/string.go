package hpack

import "bytes"

// encodeString appends the length-prefixed octet-string encoding of s (RFC
// 7541 §5.2) to buf. The Huffman bit is set only when codec.Encode(s)
// yields a strictly shorter payload than the raw string.
func encodeString(buf *bytes.Buffer, s string, codec HuffmanCodec) {
	if len(s) > 0 {
		encoded := codec.Encode(s)
		if len(encoded) < len(s) {
			encodeInteger(buf, uint64(len(encoded)), 7, 0x80)
			buf.Write(encoded)
			return
		}
	}

	encodeInteger(buf, uint64(len(s)), 7, 0x00)
	buf.WriteString(s)
}

// decodeString reads a length-prefixed octet string (RFC 7541 §5.2) from c.
// maxStringLength bounds the decoded length to defend against pathological
// input (spec §5); a value of 0 disables the bound.
func decodeString(c *cursor, codec HuffmanCodec, maxStringLength int) (string, error) {
	lead, ok := c.peek()
	if !ok {
		return "", wrapErr("decodeString", ErrTruncated)
	}
	huffman := lead&0x80 != 0

	length, err := decodeInteger(c, 7)
	if err != nil {
		return "", err
	}
	if maxStringLength > 0 && length > uint64(maxStringLength) {
		return "", wrapErr("decodeString", ErrTruncated)
	}

	raw, err := c.readN(int(length))
	if err != nil {
		return "", wrapErr("decodeString", ErrTruncated)
	}

	if !huffman {
		// Copy rather than alias: raw is a view into the caller's input
		// slice, and the returned Header may outlive this call by an
		// arbitrary amount, so a zero-copy conversion here would make the
		// decoded header's contents depend on the caller never reusing or
		// mutating the buffer it passed to DecodeBlock.
		return string(raw), nil
	}

	s, err := codec.Decode(raw)
	if err != nil {
		return "", wrapErr("decodeString", ErrInvalidHuffman)
	}
	return s, nil
}
