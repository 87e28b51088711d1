// Package loader reads a Sigma16 binary object image — a contiguous
// big-endian stream of 16-bit words, no header, no relocations — into a
// fresh VM memory.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/b-irb/sigma16-emulator/memory"
)

// Sentinel errors, wrapped with the offending path via fmt.Errorf("%w", ...)
// so callers can still match with errors.Is.
var (
	// ErrIO indicates the image file could not be read.
	ErrIO = errors.New("loader: i/o error")

	// ErrOversize indicates the image exceeds memory.MaxImageBytes.
	ErrOversize = errors.New("loader: image too large")
)

// LoadImage reads the binary image at path and returns a Memory populated
// with its contents starting at word 0.
func LoadImage(path string) (*memory.Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}
	if len(data) > memory.MaxImageBytes {
		return nil, fmt.Errorf("%w: %s: %d bytes exceeds %d byte limit",
			ErrOversize, path, len(data), memory.MaxImageBytes)
	}
	m := &memory.Memory{}
	m.LoadBytes(data)
	return m, nil
}
