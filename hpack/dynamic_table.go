package hpack

// The dynamic table (RFC 7541 §2.3): a FIFO of header entries, most recently
// inserted first. Implemented as a circular buffer (position 0 is always
// the newest entry), adapted from the teacher's dynamicTable/indexTable
// pair: insertion is strictly at the head, eviction strictly at the tail.
type dynamicTable struct {
	entries  []Header
	head     int
	count    int
	size     uint32
	capacity uint32
}

// entrySize is an entry's accounting size per RFC 7541 §4.1: name length
// plus value length plus 32 octets of fixed overhead. Octet length, not
// code-point count, and never an allocator-reported capacity (spec §9).
func entrySize(h Header) uint32 {
	return uint32(len(h.Name) + len(h.Value) + 32)
}

func newDynamicTable(capacity uint32) *dynamicTable {
	buf := int(capacity/64) + 1
	if buf < 16 {
		buf = 16
	}
	return &dynamicTable{
		entries:  make([]Header, buf),
		capacity: capacity,
	}
}

// add inserts a new entry at the head, evicting from the tail as needed to
// stay within capacity. If the entry alone is larger than capacity, the
// table is emptied and the entry is not inserted — a successful no-op per
// RFC 7541 §4.4, not an error.
func (dt *dynamicTable) add(h Header) {
	size := entrySize(h)

	for dt.size+size > dt.capacity && dt.count > 0 {
		dt.evictOldest()
	}

	if size > dt.capacity {
		return
	}

	if dt.count == len(dt.entries) {
		dt.grow()
	}

	dt.head = (dt.head - 1 + len(dt.entries)) % len(dt.entries)
	dt.entries[dt.head] = h
	dt.count++
	dt.size += size
}

// get returns the entry at the given 0-based position (0 = most recent).
func (dt *dynamicTable) get(pos int) (Header, bool) {
	if pos < 0 || pos >= dt.count {
		return Header{}, false
	}
	idx := (dt.head + pos) % len(dt.entries)
	return dt.entries[idx], true
}

// find searches for a header in the table. Positions are returned 1-based
// (1 = position 0, the newest entry), so that 0 can mean "no match" without
// a separate found flag. If some entry matches both name and value, the
// newest such entry is returned with exact true; otherwise the newest entry
// whose name matches is returned with exact false. A return of (0, false)
// means no entry's name matched at all.
func (dt *dynamicTable) find(name, value string) (pos1 int, exact bool) {
	foundName := 0
	for i := 0; i < dt.count; i++ {
		idx := (dt.head + i) % len(dt.entries)
		e := dt.entries[idx]
		if e.Name != name {
			continue
		}
		if e.Value == value {
			return i + 1, true
		}
		if foundName == 0 {
			foundName = i + 1
		}
	}
	return foundName, false
}

func (dt *dynamicTable) len() int { return dt.count }

func (dt *dynamicTable) occupancy() uint32 { return dt.size }

func (dt *dynamicTable) maxCapacity() uint32 { return dt.capacity }

// setCapacity updates the table's capacity, evicting oldest entries until
// occupancy fits within it.
func (dt *dynamicTable) setCapacity(capacity uint32) {
	dt.capacity = capacity
	for dt.size > dt.capacity && dt.count > 0 {
		dt.evictOldest()
	}
}

func (dt *dynamicTable) evictOldest() {
	if dt.count == 0 {
		return
	}
	tail := (dt.head + dt.count - 1) % len(dt.entries)
	dt.size -= entrySize(dt.entries[tail])
	dt.count--
	dt.entries[tail] = Header{}
}

// grow doubles the circular buffer's backing capacity, linearizing entries
// starting at position 0.
func (dt *dynamicTable) grow() {
	next := make([]Header, len(dt.entries)*2)
	for i := 0; i < dt.count; i++ {
		idx := (dt.head + i) % len(dt.entries)
		next[i] = dt.entries[idx]
	}
	dt.entries = next
	dt.head = 0
}

// combinedTable unifies the static table (indices 1..61) and a dynamic
// table (indices 62..) into the single 1-based index space spec §3 defines.
type combinedTable struct {
	dynamic *dynamicTable
}

func newCombinedTable(capacity uint32) *combinedTable {
	return &combinedTable{dynamic: newDynamicTable(capacity)}
}

func (t *combinedTable) get(index int) (Header, bool) {
	if index <= 0 {
		return Header{}, false
	}
	if index <= staticTableSize {
		return getStaticEntry(index)
	}
	return t.dynamic.get(index - staticTableSize - 1)
}

func (t *combinedTable) add(h Header) {
	t.dynamic.add(h)
}

// find searches the static table first, then the dynamic table, returning
// a combined 1-based index.
func (t *combinedTable) find(name, value string) (index int, exact bool) {
	staticIdx, staticExact := findStaticIndex(name, value)
	if staticExact {
		return staticIdx, true
	}

	dynPos1, dynExact := t.dynamic.find(name, value)
	if dynExact {
		return staticTableSize + dynPos1, true
	}

	if staticIdx > 0 {
		return staticIdx, false
	}
	if dynPos1 > 0 {
		return staticTableSize + dynPos1, false
	}
	return 0, false
}

func (t *combinedTable) setCapacity(capacity uint32) {
	t.dynamic.setCapacity(capacity)
}

func (t *combinedTable) occupancy() uint32 { return t.dynamic.occupancy() }

func (t *combinedTable) capacity() uint32 { return t.dynamic.maxCapacity() }
