package disk

import (
	"bytes"
	"sync"

	"github.com/ardnew/softfloppy/bridge"
	"github.com/ardnew/softfloppy/pkg"
)

// Interceptor routes sector accesses through a bridge before they reach
// storage, giving the covert channel first dibs on every access.
//
// One mutex serializes the whole classification-plus-storage path,
// providing the external serialization the bridge requires when the
// host environment issues sector I/O from multiple goroutines.
type Interceptor struct {
	mutex  sync.Mutex
	bridge *bridge.Bridge
	drives map[uint8]Storage
}

// NewInterceptor creates an interceptor in front of b with no drives
// attached.
func NewInterceptor(b *bridge.Bridge) *Interceptor {
	return &Interceptor{
		bridge: b,
		drives: make(map[uint8]Storage),
	}
}

// Attach registers store as the given drive. An existing registration
// for the drive is replaced.
func (i *Interceptor) Attach(drive uint8, store Storage) {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if _, ok := i.drives[drive]; ok {
		pkg.LogWarn(pkg.ComponentDisk, "replacing attached drive", "drive", drive)
	}
	i.drives[drive] = store
	pkg.LogInfo(pkg.ComponentDisk, "drive attached",
		"drive", drive, "sectors", store.SectorCount(), "readOnly", store.IsReadOnly())
}

// Detach removes the given drive.
func (i *Interceptor) Detach(drive uint8) {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	delete(i.drives, drive)
}

// ReadSector services one sector read. Channel traffic is answered by
// the bridge without touching storage; anything else reads from the
// attached drive. The tag area must be returned to the host in either
// case, as the bridge announces its presence through it.
func (i *Interceptor) ReadSector(drive uint8, sector uint32, tag, blk []byte) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	var before [TagSize]byte
	copy(before[:], tag)

	if i.bridge.IsChannelIO(drive, sector, tag, blk, bridge.ModeRead) {
		return nil
	}
	if !bytes.Equal(before[:], tag[:TagSize]) {
		// The bridge left a handshake announcement in the tags. The
		// access still reads real storage, but the stored tags must not
		// clobber the announcement on its way back to the host.
		var scratch [TagSize]byte
		return i.storageFor(drive).ReadSector(sector, scratch[:], blk)
	}
	return i.storageFor(drive).ReadSector(sector, tag, blk)
}

// WriteSector services one sector write, classified the same way as
// ReadSector.
func (i *Interceptor) WriteSector(drive uint8, sector uint32, tag, blk []byte) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if i.bridge.IsChannelIO(drive, sector, tag, blk, bridge.ModeWrite) {
		return nil
	}
	return i.storageFor(drive).WriteSector(sector, tag, blk)
}

// Sync flushes every attached drive, returning the first error.
func (i *Interceptor) Sync() error {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	var first error
	for drive, store := range i.drives {
		if err := store.Sync(); err != nil {
			pkg.LogError(pkg.ComponentDisk, "sync failed", "drive", drive, "error", err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// storageFor returns the storage attached as drive, or a stub that
// fails every access when the drive does not exist.
func (i *Interceptor) storageFor(drive uint8) Storage {
	if store, ok := i.drives[drive]; ok {
		return store
	}
	return noDrive{}
}

// noDrive is the storage of an unattached drive number.
type noDrive struct{}

func (noDrive) SectorCount() uint32                      { return 0 }
func (noDrive) ReadSector(uint32, []byte, []byte) error  { return pkg.ErrOutOfRange }
func (noDrive) WriteSector(uint32, []byte, []byte) error { return pkg.ErrOutOfRange }
func (noDrive) Sync() error                              { return nil }
func (noDrive) IsReadOnly() bool                         { return false }
