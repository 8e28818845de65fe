package hpack

// Header is an ordered (name, value) pair of octet strings. Decoded strings
// are opaque octets, not necessarily valid UTF-8 (spec §4.2); callers that
// need a particular character-set interpretation apply it themselves.
type Header struct {
	Name  string
	Value string
}

// Directive is the per-field indexing instruction carried alongside a
// Header: how the encoder should represent it, or how the decoder reports
// it was represented. A three-valued tag, not a single bool, so NotIndexed
// and NeverIndexed (which the RFC and downstream proxies treat very
// differently) are never conflated.
type Directive uint8

const (
	// Indexed means the field was (on decode) or shall be (on encode)
	// stored in the dynamic table.
	Indexed Directive = iota

	// NotIndexed means this representation, this hop only, must not be
	// stored. A proxy forwarding the header may choose to index it itself.
	NotIndexed

	// NeverIndexed means this representation and every proxy forwarding it
	// must never store it in any dynamic table. Used for sensitive header
	// values (e.g. credentials) that should never appear compressed by
	// reference.
	NeverIndexed
)

func (d Directive) String() string {
	switch d {
	case Indexed:
		return "Indexed"
	case NotIndexed:
		return "NotIndexed"
	case NeverIndexed:
		return "NeverIndexed"
	default:
		return "Directive(?)"
	}
}

// HeaderField pairs a Header with its indexing Directive. Context.EncodeBlock
// consumes a list of these; Context.DecodeBlock produces one.
type HeaderField struct {
	Header
	Directive Directive
}
