package flate

import (
	"bytes"
	compressflate "compress/flate"
	"math/rand/v2"
	"testing"
)

var line1Line2 = []byte("Line 1\nLine 2\n")

func TestDecompressFixedHuffmanVector(t *testing.T) {
	// Encoded with `printf 'Line 1\nLine 2\n' | gzip --no-name -1`, fixed
	// Huffman block.
	stream := []byte{0xf3, 0xc9, 0xcc, 0x4b, 0x55, 0x30, 0xe4, 0xf2, 0x01, 0x51, 0x46, 0x5c, 0x00}
	got, err := Decompress(stream)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, line1Line2) {
		t.Fatalf("got %q, want %q", got, line1Line2)
	}
}

func TestDecompressDynamicHuffmanVector(t *testing.T) {
	// Same payload, dynamic Huffman block.
	stream := []byte{0xf3, 0xc9, 0xcc, 0x4b, 0x55, 0x30, 0xe4, 0x02, 0x53, 0x46, 0x5c, 0x00}
	got, err := Decompress(stream)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, line1Line2) {
		t.Fatalf("got %q, want %q", got, line1Line2)
	}
}

func TestDecompressReservedBlockType(t *testing.T) {
	// BFINAL=1, BTYPE=3 (reserved), packed into the first byte's low 3 bits.
	stream := []byte{0b111}
	if _, err := Decompress(stream); err != ErrCorrupt {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
}

func TestDecompressTruncatedFinalBlockMissing(t *testing.T) {
	// BFINAL=0, BTYPE=1 (fixed Huffman), then nothing: the stream ends
	// before the promised subsequent block, or even an end-of-block
	// marker for this one.
	stream := []byte{0b010}
	if _, err := Decompress(stream); err != ErrCorrupt {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
}

func TestDecompressUncompressedBlock(t *testing.T) {
	var buf bytes.Buffer
	w, err := compressflate.NewWriter(&buf, 0) // level 0 emits stored blocks
	if err != nil {
		t.Fatal(err)
	}
	payload := bytes.Repeat([]byte("uncompressed round trip "), 100)
	if _, err := w.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := Decompress(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("mismatch on stored-block round trip")
	}
}

func TestDecompressRandomizedRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(20121993, 0))
	for trial := 0; trial < 30; trial++ {
		payload := randomCompressibleBytes(rng, 200+rng.IntN(60000))
		for _, level := range []int{compressflate.NoCompression, 1, 6, compressflate.BestCompression} {
			var buf bytes.Buffer
			w, err := compressflate.NewWriter(&buf, level)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := w.Write(payload); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}

			got, err := Decompress(buf.Bytes())
			if err != nil {
				t.Fatalf("trial %d level %d: %v", trial, level, err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("trial %d level %d: round trip mismatch (got %d bytes, want %d)", trial, level, len(got), len(payload))
			}
		}
	}
}

func randomCompressibleBytes(rng *rand.Rand, n int) []byte {
	var b []byte
	for len(b) < n {
		switch rng.IntN(3) {
		case 0:
			b = append(b, byte(rng.IntN(256)))
		case 1:
			run := 1 + rng.IntN(200)
			c := byte(rng.IntN(4))
			for i := 0; i < run; i++ {
				b = append(b, c)
			}
		default:
			if len(b) > 20 {
				start := rng.IntN(len(b) - 10)
				length := 1 + rng.IntN(min(len(b)-start, 1000))
				b = append(b, b[start:start+length]...)
			}
		}
	}
	return b[:n]
}

func TestDecompressTruncatedStreamIsCorrupt(t *testing.T) {
	// A back-reference past the start of the output is covered by
	// outputBuffer's own test. Here a real compressed stream is cut off
	// mid-block, and the block engine must report ErrCorrupt rather than
	// panicking uncontrolled.
	var buf bytes.Buffer
	w, _ := compressflate.NewWriter(&buf, compressflate.BestCompression)
	w.Write(bytes.Repeat([]byte("abcabcabcabc"), 50))
	w.Close()

	truncated := buf.Bytes()[:len(buf.Bytes())/2]
	if _, err := Decompress(truncated); err != ErrCorrupt {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
}
