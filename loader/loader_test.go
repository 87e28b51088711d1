package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/b-irb/sigma16-emulator/memory"
)

func TestLoadImageReadsWordsBigEndian(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	if err := os.WriteFile(path, []byte{0x0D, 0x00, 0x00, 0x00}, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got := m.ReadWord(0); got != 0x0D00 {
		t.Errorf("word 0 = %#04x, want 0x0d00", got)
	}
}

func TestLoadImageMissingFile(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.bin"))
	if !errors.Is(err, ErrIO) {
		t.Errorf("err = %v, want wrapping ErrIO", err)
	}
}

func TestLoadImageOversize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.bin")
	data := make([]byte, memory.MaxImageBytes+2)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := LoadImage(path)
	if !errors.Is(err, ErrOversize) {
		t.Errorf("err = %v, want wrapping ErrOversize", err)
	}
}
