package flate

// huffMaxSymbols bounds the largest symbol id that can appear in any of
// the three DEFLATE alphabets (286 literal/length, 30 distance, 19
// code-length). Interior tree-node ids are offset by this constant so a
// single int can represent either "leaf holding this symbol" or
// "interior node holding this index": an array of (left, right) cells
// rather than pointer-linked nodes, so the whole structure is trivially
// copyable and free of cycles.
const huffMaxSymbols = 288

// invalidEdge marks a (left, right) slot that has not been assigned yet.
const invalidEdge = -1

type huffNode struct {
	left, right int32
}

// tableEntry is one slot of the flat prefix table: either a terminal
// (consumed <= tableBits, value a symbol in [0, huffMaxSymbols), or
// invalidEdge where the path reaches an unassigned edge) or a
// non-terminal (consumed == tableBits, value an interior node id offset
// by huffMaxSymbols).
type tableEntry struct {
	consumed uint8
	value    int32
}

// huffmanDecoder is a hybrid decode structure: a binary tree built from
// the canonical codes, plus a flat lookup table over the first tableBits
// bits of the stream that resolves most real symbols (short codes) in a
// single step.
type huffmanDecoder struct {
	nodes     []huffNode
	table     []tableEntry
	tableBits int
}

// newHuffmanDecoder builds a decoder from a set of canonical codes. codes
// with len == 0 are absent from the alphabet. tableBits is the prefix
// table depth, typically 9 for literal/length, 5 or 6 for distance, 7
// for the code-length alphabet.
func newHuffmanDecoder(codes []huffCode, tableBits int) *huffmanDecoder {
	d := &huffmanDecoder{tableBits: tableBits}
	d.allocNode() // root is node 0

	for sym, c := range codes {
		if c.len == 0 {
			continue
		}
		d.insert(sym, c)
	}
	d.buildTable()
	return d
}

func (d *huffmanDecoder) allocNode() int {
	d.nodes = append(d.nodes, huffNode{left: invalidEdge, right: invalidEdge})
	return len(d.nodes) - 1
}

func (d *huffmanDecoder) branch(index int, right bool) *int32 {
	n := &d.nodes[index]
	if right {
		return &n.right
	}
	return &n.left
}

// insert walks the code MSB-first. Every bit but the last either follows
// or allocates an interior node; the last bit's edge must be unset and is
// set to the symbol. A code that collides with one already inserted
// panics with ErrCorrupt.
func (d *huffmanDecoder) insert(symbol int, c huffCode) {
	index := 0
	for bit := int(c.len) - 1; bit > 0; bit-- {
		right := (c.val>>uint(bit))&1 != 0
		edge := d.branch(index, right)
		if *edge == invalidEdge {
			// allocNode may reallocate d.nodes, so re-take the edge pointer.
			node := d.allocNode()
			edge = d.branch(index, right)
			*edge = int32(huffMaxSymbols + node)
		} else if *edge < huffMaxSymbols {
			throwCorrupt()
		}
		index = int(*edge) - huffMaxSymbols
	}
	right := c.val&1 != 0
	edge := d.branch(index, right)
	if *edge != invalidEdge {
		throwCorrupt()
	}
	*edge = int32(symbol)
}

// buildTable materializes the flat prefix table: for each of the
// 2^tableBits possible values of the next tableBits stream bits
// (LSB-first, matching peek's layout), walk the tree and record either
// the symbol reached or, if the walk is still interior after tableBits
// bits, the interior node to resume from.
func (d *huffmanDecoder) buildTable() {
	size := 1 << d.tableBits
	d.table = make([]tableEntry, size)
	for i := 0; i < size; i++ {
		d.table[i] = d.tableEntryFor(i)
	}
}

// tableEntryFor walks the tree for the candidate table index i, i.e. the
// next tableBits stream bits in LSB-first order (bit 0 of i is the first
// stream bit), stopping at a leaf or after tableBits bits.
func (d *huffmanDecoder) tableEntryFor(i int) tableEntry {
	index := 0
	val := i
	for consumed := 1; consumed <= d.tableBits; consumed++ {
		right := val&1 != 0
		val >>= 1
		edge := *d.branch(index, right)
		if edge < huffMaxSymbols {
			return tableEntry{consumed: uint8(consumed), value: edge}
		}
		index = int(edge) - huffMaxSymbols
	}
	return tableEntry{consumed: uint8(d.tableBits), value: int32(huffMaxSymbols + index)}
}

// decodeSymbol decodes one symbol from br. It panics with ErrCorrupt if
// the walk falls off an unset edge, or if a table entry points into the
// tree but no more bits remain.
func (d *huffmanDecoder) decodeSymbol(br *bitReader) int {
	value := int32(huffMaxSymbols)
	if br.potentiallyAvailable() >= d.tableBits {
		br.ensure(d.tableBits)
		w := br.peek(d.tableBits)
		te := d.table[w]
		br.consume(int(te.consumed))
		value = te.value
		if value == invalidEdge {
			throwCorrupt()
		}
	}
	for value >= huffMaxSymbols {
		index := int(value) - huffMaxSymbols
		right := br.getBit() != 0
		value = *d.branch(index, right)
		if value == invalidEdge {
			throwCorrupt()
		}
	}
	return int(value)
}
