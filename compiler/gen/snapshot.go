package gen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotFile is the default snapshot file name, stored next to the
// generated code.
const SnapshotFile = ".strtype.snapshot"

// snapshotVersion guards against decoding snapshots written by an
// incompatible release.
const snapshotVersion = 1

// Snapshot is a persisted copy of the resolved declarations. When the
// snapshot feature is enabled, an unchanged snapshot lets the generator
// skip regeneration.
type Snapshot struct {
	Version int     `msgpack:"version"`
	Types   []*Type `msgpack:"types"`
}

// NewSnapshot builds a snapshot of the given declarations.
func NewSnapshot(types []*Type) *Snapshot {
	return &Snapshot{
		Version: snapshotVersion,
		Types:   types,
	}
}

// Encode serializes the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, NewGenerationError("snapshot", "", "encode snapshot", err)
	}
	return data, nil
}

// DecodeSnapshot deserializes a snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, NewGenerationError("snapshot", "", "decode snapshot", err)
	}
	return &s, nil
}

// Equal reports whether both snapshots describe the same declarations.
// Comparison goes through the encoded form, which makes it insensitive to
// in-memory representation details.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return false
	}
	a, err := s.Encode()
	if err != nil {
		return false
	}
	b, err := other.Encode()
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// ReadSnapshot loads a snapshot from path. A missing file is not an
// error; it returns a nil snapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, NewGenerationError("snapshot", path, "read snapshot", err)
	}
	return DecodeSnapshot(data)
}

// WriteSnapshot stores the snapshot at path.
func WriteSnapshot(path string, s *Snapshot) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewGenerationError("snapshot", path, "write snapshot", err)
	}
	return nil
}
