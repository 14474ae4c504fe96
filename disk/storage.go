package disk

import (
	"fmt"
	"os"
	"sync"

	"github.com/ardnew/softfloppy/bridge"
	"github.com/ardnew/softfloppy/pkg"
)

// Sector geometry, shared with the bridge's wire layout.
const (
	SectorSize = bridge.BlockSize
	TagSize    = bridge.TagLen
)

// Storage defines the interface for sector storage backends.
// Implementations provide tag-carrying 512-byte sector operations.
type Storage interface {
	// SectorCount returns the total number of sectors.
	SectorCount() uint32

	// ReadSector reads one sector into blk and its tag area into tag.
	ReadSector(sector uint32, tag, blk []byte) error

	// WriteSector writes one sector from blk and its tag area from tag.
	WriteSector(sector uint32, tag, blk []byte) error

	// Sync flushes any cached writes to storage.
	Sync() error

	// IsReadOnly returns true if storage is read-only.
	IsReadOnly() bool
}

// MemoryImage implements Storage using in-memory buffers.
type MemoryImage struct {
	data     []byte
	tags     []byte
	readOnly bool
	mutex    sync.RWMutex
}

// NewMemoryImage creates an in-memory image with the given sector count.
func NewMemoryImage(sectors uint32) *MemoryImage {
	return &MemoryImage{
		data: make([]byte, int(sectors)*SectorSize),
		tags: make([]byte, int(sectors)*TagSize),
	}
}

// SectorCount returns the number of sectors.
func (m *MemoryImage) SectorCount() uint32 {
	return uint32(len(m.data) / SectorSize)
}

// ReadSector reads a sector and its tags from memory.
func (m *MemoryImage) ReadSector(sector uint32, tag, blk []byte) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if sector >= m.SectorCount() {
		return pkg.ErrOutOfRange
	}
	if len(blk) < SectorSize || len(tag) < TagSize {
		return pkg.ErrShortBuffer
	}

	copy(blk[:SectorSize], m.data[int(sector)*SectorSize:])
	copy(tag[:TagSize], m.tags[int(sector)*TagSize:])
	return nil
}

// WriteSector writes a sector and its tags to memory.
func (m *MemoryImage) WriteSector(sector uint32, tag, blk []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.readOnly {
		return pkg.ErrReadOnly
	}
	if sector >= m.SectorCount() {
		return pkg.ErrOutOfRange
	}
	if len(blk) < SectorSize || len(tag) < TagSize {
		return pkg.ErrShortBuffer
	}

	copy(m.data[int(sector)*SectorSize:], blk[:SectorSize])
	copy(m.tags[int(sector)*TagSize:], tag[:TagSize])
	return nil
}

// Sync is a no-op for memory images.
func (m *MemoryImage) Sync() error {
	return nil
}

// IsReadOnly returns whether the image is read-only.
func (m *MemoryImage) IsReadOnly() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.readOnly
}

// SetReadOnly sets the read-only flag.
func (m *MemoryImage) SetReadOnly(readOnly bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.readOnly = readOnly
}

// FileImage implements Storage using a raw image file. The file holds
// sector data only; tags live in memory and are lost on close, which
// matches how flat image formats omit tag storage.
type FileImage struct {
	file     *os.File
	sectors  uint32
	tags     []byte
	readOnly bool
	mutex    sync.RWMutex
}

// NewFileImage opens a raw image file. The file size must be a multiple
// of the sector size. If readOnly is true the file is opened read-only.
func NewFileImage(path string, readOnly bool) (*FileImage, error) {
	flags := os.O_RDWR
	if readOnly {
		flags = os.O_RDONLY
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if stat.Size()%SectorSize != 0 {
		file.Close()
		return nil, fmt.Errorf("image size %d not a multiple of %d: %w",
			stat.Size(), SectorSize, pkg.ErrInvalidParameter)
	}

	sectors := uint32(stat.Size() / SectorSize)
	return &FileImage{
		file:     file,
		sectors:  sectors,
		tags:     make([]byte, int(sectors)*TagSize),
		readOnly: readOnly,
	}, nil
}

// SectorCount returns the number of sectors.
func (f *FileImage) SectorCount() uint32 {
	return f.sectors
}

// ReadSector reads a sector from the file and its tags from memory.
func (f *FileImage) ReadSector(sector uint32, tag, blk []byte) error {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	if sector >= f.sectors {
		return pkg.ErrOutOfRange
	}
	if len(blk) < SectorSize || len(tag) < TagSize {
		return pkg.ErrShortBuffer
	}

	if _, err := f.file.ReadAt(blk[:SectorSize], int64(sector)*SectorSize); err != nil {
		return err
	}
	copy(tag[:TagSize], f.tags[int(sector)*TagSize:])
	return nil
}

// WriteSector writes a sector to the file and its tags to memory.
func (f *FileImage) WriteSector(sector uint32, tag, blk []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if f.readOnly {
		return pkg.ErrReadOnly
	}
	if sector >= f.sectors {
		return pkg.ErrOutOfRange
	}
	if len(blk) < SectorSize || len(tag) < TagSize {
		return pkg.ErrShortBuffer
	}

	if _, err := f.file.WriteAt(blk[:SectorSize], int64(sector)*SectorSize); err != nil {
		return err
	}
	copy(f.tags[int(sector)*TagSize:], tag[:TagSize])
	return nil
}

// Sync flushes the image file.
func (f *FileImage) Sync() error {
	return f.file.Sync()
}

// IsReadOnly returns whether the image is read-only.
func (f *FileImage) IsReadOnly() bool {
	return f.readOnly
}

// Close syncs and closes the image file.
func (f *FileImage) Close() error {
	if !f.readOnly {
		if err := f.file.Sync(); err != nil {
			f.file.Close()
			return err
		}
	}
	return f.file.Close()
}

// Compile-time interface checks
var (
	_ Storage = (*MemoryImage)(nil)
	_ Storage = (*FileImage)(nil)
)
