package hpack

import (
	"bytes"
	"math"
)

// maxIntegerValue bounds a decoded integer to fit a 32-bit unsigned value,
// per spec §4.1's recommendation to reject values the RFC would otherwise
// permit rejecting as "wider than a configured maximum".
const maxIntegerValue = math.MaxUint32

// encodeInteger appends the variable-length encoding of value (RFC 7541
// §5.1) to buf, using an N-bit prefix (1 <= prefix <= 8) and OR-ing the
// caller's flag bits into the high (8-prefix) bits of the first octet.
func encodeInteger(buf *bytes.Buffer, value uint64, prefix uint8, flags byte) {
	max := uint64(1<<prefix) - 1

	if value < max {
		buf.WriteByte(flags | byte(value))
		return
	}

	buf.WriteByte(flags | byte(max))
	value -= max

	for value >= 128 {
		buf.WriteByte(byte(value%128) | 0x80)
		value /= 128
	}
	buf.WriteByte(byte(value))
}

// decodeInteger reads a variable-length integer (RFC 7541 §5.1) with an
// N-bit prefix from c. The termination condition is the octet whose high
// bit is clear — decoding continues while the high bit is set.
func decodeInteger(c *cursor, prefix uint8) (uint64, error) {
	b, err := c.readByte()
	if err != nil {
		return 0, wrapErr("decodeInteger", ErrTruncated)
	}

	max := uint64(1<<prefix) - 1
	value := uint64(b) & max
	if value < max {
		return value, nil
	}

	var m uint
	for {
		b, err := c.readByte()
		if err != nil {
			return 0, wrapErr("decodeInteger", ErrTruncated)
		}

		cont := uint64(b & 0x7f)
		value += cont << m
		if value > maxIntegerValue {
			return 0, wrapErr("decodeInteger", ErrIntegerOverflow)
		}
		m += 7

		if b&0x80 == 0 {
			break
		}
		if m > 35 {
			return 0, wrapErr("decodeInteger", ErrIntegerOverflow)
		}
	}

	return value, nil
}
