package phnx

import "hash/crc32"

// crc32cTable is the Castagnoli polynomial table (reflected 0x82f63b78),
// the same table the wire format's checksum is defined over.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C is an incremental Castagnoli CRC-32 accumulator. A file is
// checksummed by up to two accumulators: crcBefore over the bytes as
// read, and crcAfter over the same bytes post-XOR. A trailer carries a
// single CRC (duplicated, for a cheap password-correctness check); the
// checksum-tag mode combines both.
type CRC32C struct {
	value uint32
}

// NewCRC32C returns an accumulator with the initial all-ones state.
func NewCRC32C() *CRC32C {
	return &CRC32C{value: ^uint32(0)}
}

// Write feeds data into the accumulator. It never returns an error,
// matching hash.Hash's Write contract.
func (c *CRC32C) Write(data []byte) (int, error) {
	c.value = ^crc32.Update(^c.value, crc32cTable, data)
	return len(data), nil
}

// Sum32 returns the finalized (XOR-inverted) checksum.
func (c *CRC32C) Sum32() uint32 {
	return ^c.value
}
