package flate

import "errors"

// ErrCorrupt is the single failure mode of the core decoder: reserved
// block type, truncated input, an out-of-range symbol, a Huffman walk
// into an unset edge, a back-reference past the start of the output, or
// any other violation of the format. The decoder never produces partial
// output on this error; whatever was accumulated is discarded.
var ErrCorrupt = errors.New("flate: corrupt input")

// throwCorrupt panics with ErrCorrupt. Decompress recovers at the call
// boundary and turns the panic back into a returned error: the block
// engine's control flow is simpler to write as unconditional "panic on
// bad input" with a single recover than as threading an error return
// through every bit-reader and Huffman call.
func throwCorrupt() {
	panic(ErrCorrupt)
}
