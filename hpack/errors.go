package hpack

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced by the codec (spec §7). Every decode failure
// is fatal for the current header block: a block is an atomic operation,
// either producing the entire emitted header list or one of these errors.
var (
	// ErrTruncated indicates the input ended inside an integer, string, or
	// representation. It is also returned when a string's declared length
	// exceeds the decoder's maximum string length.
	ErrTruncated = errors.New("hpack: truncated input")

	// ErrInvalidIndex indicates a combined-index reference to position 0
	// where 0 is not the new-name sentinel, or to a slot past the end of
	// the combined index space.
	ErrInvalidIndex = errors.New("hpack: invalid index")

	// ErrIntegerOverflow indicates a decoded integer exceeded the
	// implementation's maximum (a 32-bit unsigned integer).
	ErrIntegerOverflow = errors.New("hpack: integer overflow")

	// ErrInvalidHuffman indicates the Huffman collaborator rejected its
	// input.
	ErrInvalidHuffman = errors.New("hpack: invalid Huffman string")

	// ErrCompressionError indicates an ordering or semantic violation, such
	// as a dynamic-table size update after the block body has started, or
	// a size update above the negotiated maximum capacity.
	ErrCompressionError = errors.New("hpack: compression error")
)

// CodecError wraps one of the sentinel errors above with the operation and,
// where applicable, the index being resolved when the failure occurred.
// Mirrors the sentinel-plus-wrapper error shape used throughout the rest of
// this pack (see the sibling capacitor package's CacheError/DatabaseError).
type CodecError struct {
	// Op names the decode or encode step that failed, e.g.
	// "decodeInteger", "decodeIndexed", "decodeString".
	Op string

	// Index is the combined-table index being resolved, if relevant. Zero
	// when not applicable.
	Index int

	// Err is one of the sentinel errors declared above.
	Err error
}

func (e *CodecError) Error() string {
	if e.Index != 0 {
		return fmt.Sprintf("hpack: %s (index %d): %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("hpack: %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CodecError{Op: op, Err: err}
}

func wrapIndexErr(op string, index int, err error) error {
	if err == nil {
		return nil
	}
	return &CodecError{Op: op, Index: index, Err: err}
}

// IsTruncated reports whether err is or wraps ErrTruncated.
func IsTruncated(err error) bool { return errors.Is(err, ErrTruncated) }

// IsInvalidIndex reports whether err is or wraps ErrInvalidIndex.
func IsInvalidIndex(err error) bool { return errors.Is(err, ErrInvalidIndex) }

// IsIntegerOverflow reports whether err is or wraps ErrIntegerOverflow.
func IsIntegerOverflow(err error) bool { return errors.Is(err, ErrIntegerOverflow) }

// IsInvalidHuffman reports whether err is or wraps ErrInvalidHuffman.
func IsInvalidHuffman(err error) bool { return errors.Is(err, ErrInvalidHuffman) }

// IsCompressionError reports whether err is or wraps ErrCompressionError.
func IsCompressionError(err error) bool { return errors.Is(err, ErrCompressionError) }
