package disk

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/softfloppy/pkg"
)

func TestMemoryImage_ReadWrite(t *testing.T) {
	img := NewMemoryImage(4)

	tag := bytes.Repeat([]byte{0x11}, TagSize)
	blk := bytes.Repeat([]byte{0x22}, SectorSize)
	if err := img.WriteSector(2, tag, blk); err != nil {
		t.Fatalf("WriteSector() = %v", err)
	}

	gotTag := make([]byte, TagSize)
	gotBlk := make([]byte, SectorSize)
	if err := img.ReadSector(2, gotTag, gotBlk); err != nil {
		t.Fatalf("ReadSector() = %v", err)
	}
	if !bytes.Equal(gotTag, tag) {
		t.Error("tag round trip mismatch")
	}
	if !bytes.Equal(gotBlk, blk) {
		t.Error("block round trip mismatch")
	}

	// Neighboring sectors stay zeroed.
	if err := img.ReadSector(1, gotTag, gotBlk); err != nil {
		t.Fatalf("ReadSector(1) = %v", err)
	}
	if !bytes.Equal(gotBlk, make([]byte, SectorSize)) {
		t.Error("write bled into neighboring sector")
	}
}

func TestMemoryImage_Errors(t *testing.T) {
	img := NewMemoryImage(2)
	tag := make([]byte, TagSize)
	blk := make([]byte, SectorSize)

	tests := []struct {
		name string
		op   func() error
		want error
	}{
		{"read out of range", func() error { return img.ReadSector(2, tag, blk) }, pkg.ErrOutOfRange},
		{"write out of range", func() error { return img.WriteSector(99, tag, blk) }, pkg.ErrOutOfRange},
		{"read short block", func() error { return img.ReadSector(0, tag, blk[:1]) }, pkg.ErrShortBuffer},
		{"write short tag", func() error { return img.WriteSector(0, tag[:1], blk) }, pkg.ErrShortBuffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMemoryImage_ReadOnly(t *testing.T) {
	img := NewMemoryImage(1)
	img.SetReadOnly(true)

	if !img.IsReadOnly() {
		t.Fatal("IsReadOnly() = false after SetReadOnly(true)")
	}

	tag := make([]byte, TagSize)
	blk := make([]byte, SectorSize)
	if err := img.WriteSector(0, tag, blk); !errors.Is(err, pkg.ErrReadOnly) {
		t.Errorf("WriteSector() = %v, want %v", err, pkg.ErrReadOnly)
	}
}

func newTestImageFile(t *testing.T, sectors int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "floppy.img")
	if err := os.WriteFile(path, make([]byte, sectors*SectorSize), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileImage_ReadWrite(t *testing.T) {
	path := newTestImageFile(t, 8)

	img, err := NewFileImage(path, false)
	if err != nil {
		t.Fatalf("NewFileImage() = %v", err)
	}
	defer img.Close()

	if got := img.SectorCount(); got != 8 {
		t.Fatalf("SectorCount() = %d, want 8", got)
	}

	tag := bytes.Repeat([]byte{0xAB}, TagSize)
	blk := bytes.Repeat([]byte{0xCD}, SectorSize)
	if err := img.WriteSector(5, tag, blk); err != nil {
		t.Fatalf("WriteSector() = %v", err)
	}

	gotTag := make([]byte, TagSize)
	gotBlk := make([]byte, SectorSize)
	if err := img.ReadSector(5, gotTag, gotBlk); err != nil {
		t.Fatalf("ReadSector() = %v", err)
	}
	if !bytes.Equal(gotTag, tag) || !bytes.Equal(gotBlk, blk) {
		t.Error("file image round trip mismatch")
	}
}

func TestFileImage_ReadOnly(t *testing.T) {
	path := newTestImageFile(t, 2)

	img, err := NewFileImage(path, true)
	if err != nil {
		t.Fatalf("NewFileImage() = %v", err)
	}
	defer img.Close()

	tag := make([]byte, TagSize)
	blk := make([]byte, SectorSize)
	if err := img.WriteSector(0, tag, blk); !errors.Is(err, pkg.ErrReadOnly) {
		t.Errorf("WriteSector() = %v, want %v", err, pkg.ErrReadOnly)
	}
}

func TestFileImage_BadSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.img")
	if err := os.WriteFile(path, make([]byte, SectorSize+7), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileImage(path, false); !errors.Is(err, pkg.ErrInvalidParameter) {
		t.Errorf("NewFileImage() = %v, want %v", err, pkg.ErrInvalidParameter)
	}
}
