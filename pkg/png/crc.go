package png

import (
	"hash/crc32"
	"sync"
)

// crcTable is built on first use and read-only afterwards.
var crcTable = sync.OnceValue(func() *crc32.Table {
	return crc32.MakeTable(crc32.IEEE)
})

// chunkCRC is the CRC-32 of the type bytes followed by the payload.
func chunkCRC(t ChunkType, data []byte) uint32 {
	tab := crcTable()
	crc := crc32.Update(0, tab, t[:])
	return crc32.Update(crc, tab, data)
}
