package phnx

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSliceSet_CreateWriteCommitRead(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "payload")

	enc, err := CreateSlicesForEncode(base)
	if err != nil {
		t.Fatalf("CreateSlicesForEncode() error = %v", err)
	}
	group := [8][3]byte{
		{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12},
		{13, 14, 15}, {16, 17, 18}, {19, 20, 21}, {22, 23, 24},
	}
	if err := enc.WriteGroup(group); err != nil {
		t.Fatalf("WriteGroup() error = %v", err)
	}
	if err := enc.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	for _, letter := range sliceSuffixes {
		name := base + ".phnx_" + string(letter)
		if _, err := os.Stat(name); err != nil {
			t.Fatalf("expected final slice %s to exist: %v", name, err)
		}
	}

	dec, err := OpenSlicesForDecode(base)
	if err != nil {
		t.Fatalf("OpenSlicesForDecode() error = %v", err)
	}
	defer dec.Close()

	got, err := dec.ReadGroup()
	if err != nil {
		t.Fatalf("ReadGroup() error = %v", err)
	}
	if got != group {
		t.Fatalf("ReadGroup() = %v, want %v", got, group)
	}
}

func TestOpenSlicesForDecode_ToleratesOneMissingFile(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "payload")

	enc, err := CreateSlicesForEncode(base)
	if err != nil {
		t.Fatalf("CreateSlicesForEncode() error = %v", err)
	}
	if err := enc.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if err := os.Remove(base + ".phnx_C"); err != nil {
		t.Fatalf("os.Remove() error = %v", err)
	}

	s, err := OpenSlicesForDecode(base)
	if err != nil {
		t.Fatalf("OpenSlicesForDecode() with one missing slice error = %v", err)
	}
	defer s.Close()
	if s.files[2] != nil {
		t.Fatalf("expected slice C to be nil")
	}
}

func TestOpenSlicesForDecode_FailsWithTwoMissingFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "payload")

	enc, err := CreateSlicesForEncode(base)
	if err != nil {
		t.Fatalf("CreateSlicesForEncode() error = %v", err)
	}
	if err := enc.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	os.Remove(base + ".phnx_A")
	os.Remove(base + ".phnx_B")

	_, err = OpenSlicesForDecode(base)
	if !IsUncorrectable(err) {
		t.Fatalf("OpenSlicesForDecode() error = %v, want UncorrectableError", err)
	}
}

func TestCreateSlicesForEncode_CloseRemovesScratchFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "payload")

	enc, err := CreateSlicesForEncode(base)
	if err != nil {
		t.Fatalf("CreateSlicesForEncode() error = %v", err)
	}
	enc.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("os.ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no leftover scratch files, found %d", len(entries))
	}
}
