package phnx

import (
	"io"
	"os"

	"github.com/google/uuid"
)

// sliceSuffixes gives the eight on-disk suffixes, A through H, in
// slice-index order.
var sliceSuffixes = [8]byte{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H'}

// SliceSet holds up to eight open slice files for one protected-mode
// operation. Exactly one slot may be nil (missing) during decode;
// during encode every slot is populated and initially points at a
// scratch file, committed to its final name only once the whole file
// has been written successfully.
type SliceSet struct {
	files    [8]*os.File
	base     string
	tmpNames [8]string
	encoding bool
}

// OpenSlicesForDecode opens the eight "<base>.phnx_A".."phnx_H" files
// for reading, tolerating exactly one missing file. It returns
// UncorrectableError if more than one slice cannot be opened.
func OpenSlicesForDecode(base string) (*SliceSet, error) {
	s := &SliceSet{base: base}
	missing := 0
	for i := 0; i < 8; i++ {
		name := base + ".phnx_" + string(sliceSuffixes[i])
		f, err := os.Open(name)
		if err != nil {
			missing++
			if missing > 1 {
				s.Close()
				return nil, &UncorrectableError{Path: base, MissingSlices: missing}
			}
			continue
		}
		s.files[i] = f
	}
	return s, nil
}

// CreateSlicesForEncode creates eight scratch files,
// "<base>.phnx_<X>.<uuid>.tmp", that will be renamed into their final
// "<base>.phnx_<X>" names by Commit once every slice and the trailer
// have been written successfully.
func CreateSlicesForEncode(base string) (*SliceSet, error) {
	s := &SliceSet{base: base, encoding: true}
	scratch := uuid.New().String()
	for i := 0; i < 8; i++ {
		tmp := base + ".phnx_" + string(sliceSuffixes[i]) + "." + scratch + ".tmp"
		f, err := os.Create(tmp)
		if err != nil {
			s.Close()
			return nil, NewIOError("create", tmp, err)
		}
		s.files[i] = f
		s.tmpNames[i] = tmp
	}
	return s, nil
}

// SeekEnd seeks every open slice to offset bytes before its end, used
// to position at the trailer before decoding it.
func (s *SliceSet) SeekEnd(offset int64) error {
	for i, f := range s.files {
		if f == nil {
			continue
		}
		if _, err := f.Seek(offset, io.SeekEnd); err != nil {
			return NewIOError("seek", s.sliceName(i), err)
		}
	}
	return nil
}

// SeekStart rewinds every open slice to the beginning, used after
// reading the trailer and before streaming the body.
func (s *SliceSet) SeekStart() error {
	for i, f := range s.files {
		if f == nil {
			continue
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return NewIOError("seek", s.sliceName(i), err)
		}
	}
	return nil
}

// ReadGroup reads one 3-byte group from each present slice; a missing
// slice contributes an all-zero group, which the Golay code treats as
// at most 3 bit errors confined to that slice's bit positions.
func (s *SliceSet) ReadGroup() (groups [8][3]byte, err error) {
	for i, f := range s.files {
		if f == nil {
			continue
		}
		if _, err := io.ReadFull(f, groups[i][:]); err != nil {
			return groups, NewIOError("read", s.sliceName(i), err)
		}
	}
	return groups, nil
}

// WriteGroup writes one 3-byte group to each slice.
func (s *SliceSet) WriteGroup(groups [8][3]byte) error {
	for i, f := range s.files {
		if f == nil {
			continue
		}
		if _, err := f.Write(groups[i][:]); err != nil {
			return NewIOError("write", s.sliceName(i), err)
		}
	}
	return nil
}

// Commit closes every scratch file and renames it to its final slice
// name. It is only meaningful for a SliceSet from CreateSlicesForEncode.
func (s *SliceSet) Commit() error {
	for i, f := range s.files {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil {
			return NewIOError("close", s.tmpNames[i], err)
		}
	}
	for i, tmp := range s.tmpNames {
		if tmp == "" {
			continue
		}
		final := s.base + ".phnx_" + string(sliceSuffixes[i])
		if err := os.Rename(tmp, final); err != nil {
			return NewIOError("rename", tmp, err)
		}
	}
	return nil
}

// Close closes every open slice file, discarding any scratch files
// left behind (used on the error path, before Commit).
func (s *SliceSet) Close() {
	for _, f := range s.files {
		if f != nil {
			f.Close()
		}
	}
	if s.encoding {
		for _, tmp := range s.tmpNames {
			if tmp != "" {
				os.Remove(tmp)
			}
		}
	}
}

func (s *SliceSet) sliceName(i int) string {
	return s.base + ".phnx_" + string(sliceSuffixes[i])
}
