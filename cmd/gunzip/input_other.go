//go:build !unix

package main

import "os"

// readInput falls back to an ordinary read on platforms with no mmap
// implementation wired up (see input_unix.go); -mmap is accepted but has
// no effect.
func readInput(path string, useMmap bool) ([]byte, func(), error) {
	data, err := os.ReadFile(path)
	return data, func() {}, err
}
