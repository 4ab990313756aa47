package chunkstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	V1WorldsPrefix = "v1/worlds"

	PathSep            = "/"
	SnapshotExt        = "snap"
	SealExt            = "sth" // signed snapshot head
	SnapshotNameFmt    = "%016d.snap"
	SealNameFmt        = "%016d.sth"
	snapshotsComponent = "snapshots"

	// LenUUIDString is the length of the canonical UUID text form.
	LenUUIDString = 36
)

// SnapshotPrefix returns the location of every snapshot of a world.
func SnapshotPrefix(worldID uuid.UUID) string {
	return fmt.Sprintf("%s/%s/%s/", V1WorldsPrefix, worldID, snapshotsComponent)
}

// SnapshotPath returns the storage path of a snapshot. Because object stores
// list names lexically the sequence number is zero padded to 16 digits.
func SnapshotPath(worldID uuid.UUID, seq uint32) string {
	return SnapshotPrefix(worldID) + fmt.Sprintf(SnapshotNameFmt, seq)
}

// SealPath returns the path of the signed manifest stored next to a snapshot.
func SealPath(worldID uuid.UUID, seq uint32) string {
	return SnapshotPrefix(worldID) + fmt.Sprintf(SealNameFmt, seq)
}

// ParseWorldID recovers the world uuid from any path under V1WorldsPrefix.
func ParseWorldID(storagePath string) (uuid.UUID, error) {
	prefix := V1WorldsPrefix + PathSep
	i := strings.Index(storagePath, prefix)
	if i == -1 {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrBadPath, storagePath)
	}
	rest := storagePath[i+len(prefix):]

	// allow the uuid to be followed by a slash or the end of the string
	j := strings.Index(rest, PathSep)
	if j == -1 {
		j = len(rest)
	}
	if j != LenUUIDString {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrBadPath, storagePath)
	}
	id, err := uuid.Parse(rest[:j])
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", ErrBadPath, storagePath, err)
	}
	return id, nil
}

// ParseSeq recovers the sequence number from a snapshot or seal path.
func ParseSeq(storagePath string) (uint32, error) {
	base := storagePath[strings.LastIndex(storagePath, PathSep)+1:]
	name, ext, ok := strings.Cut(base, ".")
	if !ok || (ext != SnapshotExt && ext != SealExt) {
		return 0, fmt.Errorf("%w: %s", ErrBadPath, storagePath)
	}
	seq, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBadPath, storagePath, err)
	}
	return uint32(seq), nil
}
