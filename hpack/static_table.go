package hpack

// The static table (RFC 7541 Appendix A): 61 predefined header fields, never
// evicted, indexed 1..61. Kept as a fixed ordered array per spec §9's note
// that a hash-based container is the wrong tool for a tiny constant list —
// a map is used only as a secondary lookup accelerator for findStaticIndex,
// never as the table's storage.
var staticTable = [...]Header{
	{},                                   // index 0 - unused (the new-name sentinel)
	{":authority", ""},                   // 1
	{":method", "GET"},                   // 2
	{":method", "POST"},                  // 3
	{":path", "/"},                       // 4
	{":path", "/index.html"},             // 5
	{":scheme", "http"},                  // 6
	{":scheme", "https"},                 // 7
	{":status", "200"},                   // 8
	{":status", "204"},                   // 9
	{":status", "206"},                   // 10
	{":status", "304"},                   // 11
	{":status", "400"},                   // 12
	{":status", "404"},                   // 13
	{":status", "500"},                   // 14
	{"accept-charset", ""},               // 15
	{"accept-encoding", "gzip, deflate"}, // 16
	{"accept-language", ""},              // 17
	{"accept-ranges", ""},                // 18
	{"accept", ""},                       // 19
	{"access-control-allow-origin", ""},  // 20
	{"age", ""},                          // 21
	{"allow", ""},                        // 22
	{"authorization", ""},                // 23
	{"cache-control", ""},                // 24
	{"content-disposition", ""},          // 25
	{"content-encoding", ""},             // 26
	{"content-language", ""},             // 27
	{"content-length", ""},               // 28
	{"content-location", ""},             // 29
	{"content-range", ""},                // 30
	{"content-type", ""},                 // 31
	{"cookie", ""},                       // 32
	{"date", ""},                         // 33
	{"etag", ""},                         // 34
	{"expect", ""},                       // 35
	{"expires", ""},                      // 36
	{"from", ""},                         // 37
	{"host", ""},                         // 38
	{"if-match", ""},                     // 39
	{"if-modified-since", ""},            // 40
	{"if-none-match", ""},                // 41
	{"if-range", ""},                     // 42
	{"if-unmodified-since", ""},          // 43
	{"last-modified", ""},                // 44
	{"link", ""},                         // 45
	{"location", ""},                     // 46
	{"max-forwards", ""},                 // 47
	{"proxy-authenticate", ""},           // 48
	{"proxy-authorization", ""},          // 49
	{"range", ""},                        // 50
	{"referer", ""},                      // 51
	{"refresh", ""},                      // 52
	{"retry-after", ""},                  // 53
	{"server", ""},                       // 54
	{"set-cookie", ""},                   // 55
	{"strict-transport-security", ""},    // 56
	{"transfer-encoding", ""},            // 57
	{"user-agent", ""},                   // 58
	{"vary", ""},                         // 59
	{"via", ""},                          // 60
	{"www-authenticate", ""},             // 61
}

// staticTableSize is the number of entries in the static table (spec §3:
// combined index space reserves 1..61 for it).
const staticTableSize = 61

// getStaticEntry returns the static table entry at the given 1-based index.
// The zero Header is returned for an out-of-range index.
func getStaticEntry(index int) (Header, bool) {
	if index < 1 || index > staticTableSize {
		return Header{}, false
	}
	return staticTable[index], true
}

// staticTableIndex accelerates findStaticIndex; the canonical, ordered
// storage remains staticTable above.
var staticTableIndex map[string]int

func init() {
	staticTableIndex = make(map[string]int, staticTableSize*2)

	for i := 1; i <= staticTableSize; i++ {
		entry := staticTable[i]

		if _, exists := staticTableIndex[entry.Name]; !exists {
			staticTableIndex[entry.Name] = i
		}

		if entry.Value != "" {
			staticTableIndex[entry.Name+"\x00"+entry.Value] = i
		}
	}
}

// findStaticIndex searches the static table for a header. It returns the
// 1-based index and whether both name and value matched (exact) or only
// the name did.
func findStaticIndex(name, value string) (index int, exact bool) {
	if value != "" {
		if idx, found := staticTableIndex[name+"\x00"+value]; found {
			return idx, true
		}
	}
	if idx, found := staticTableIndex[name]; found {
		// Names with an empty-valued entry appear only once in the table,
		// so the name lookup is also the exact match for an empty value.
		return idx, value == "" && staticTable[idx].Value == ""
	}
	return 0, false
}
