package hpack

// HuffmanCodec is the external collaborator StringCodec delegates string
// transforms to (spec §1, §4.2, §6). The core never reaches into Huffman
// tables itself; it only calls Encode/Decode on whatever is configured.
//
// Encode receives a plain string and returns its Huffman-coded octets.
// Decode receives Huffman-coded octets and returns the decoded string, or
// ErrInvalidHuffman if the payload is not valid Huffman-coded data.
type HuffmanCodec interface {
	Encode(s string) []byte
	Decode(b []byte) (string, error)
}

// IdentityHuffmanCodec is a no-op HuffmanCodec: Encode returns the input
// octets unchanged and Decode never fails. It is the default used by
// NewContext when the caller supplies a nil codec, keeping this package
// usable standalone while leaving the real RFC 7541 Huffman table — an
// external concern per spec §1 — to whatever caller needs it.
//
// Because Encode never produces a shorter form than the original, the
// string encoder's "keep Huffman only if shorter" policy (§4.2) means the H
// bit is simply never set when this codec is in use; strings still round
// trip correctly, they are just never coded.
type IdentityHuffmanCodec struct{}

func (IdentityHuffmanCodec) Encode(s string) []byte {
	return []byte(s)
}

func (IdentityHuffmanCodec) Decode(b []byte) (string, error) {
	return string(b), nil
}
