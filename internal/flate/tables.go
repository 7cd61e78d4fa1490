package flate

const (
	endOfBlock  = 256
	lenSymMin   = 257
	lenSymMax   = 285
	numCLCodes  = 19
	maxHLitLen  = 286
	maxHDistLen = 30
)

// lengthExtraBits and lengthBase are indexed by (symbol - 257), per RFC
// 1951 section 3.2.5's length code table.
var lengthExtraBits = [1 + lenSymMax - lenSymMin]int{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
}

var lengthBase = [1 + lenSymMax - lenSymMin]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
}

// distExtraBits and distBase are indexed by distance symbol, per RFC
// 1951 section 3.2.5's distance code table.
var distExtraBits = [32]int{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}

var distBase = [32]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

// codeLengthOrder gives the order in which the HCLEN code-length-code
// lengths are read off the wire for a dynamic block, per RFC 1951
// section 3.2.7.
var codeLengthOrder = [numCLCodes]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}
