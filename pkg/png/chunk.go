package png

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"
)

// Chunk is one length-prefixed, checksummed record. The CRC is always derived
// from the type and payload; a Chunk is never modified after construction.
type Chunk struct {
	typ  ChunkType
	data []byte
	crc  uint32
}

// NewChunk builds a chunk and computes its CRC. data is copied.
func NewChunk(t ChunkType, data []byte) Chunk {
	owned := make([]byte, len(data))
	copy(owned, data)
	return Chunk{typ: t, data: owned, crc: chunkCRC(t, owned)}
}

// DecodeChunk parses exactly one serialised chunk:
//
//	length (4, BE) | type (4) | data (length) | crc (4, BE)
//
// b must hold nothing but that record.
func DecodeChunk(b []byte) (Chunk, error) {
	if len(b) < 4 {
		return Chunk{}, ErrTruncatedInput
	}
	length := binary.BigEndian.Uint32(b)
	rest := b[4:]
	if len(rest) < 8 || uint64(length)+8 != uint64(len(rest)) {
		return Chunk{}, &ChunkLengthError{Expected: length, Received: received(len(rest))}
	}

	body := rest[:len(rest)-4]
	stored := binary.BigEndian.Uint32(rest[len(rest)-4:])
	var raw [4]byte
	copy(raw[:], body[:4])
	computed := chunkCRC(ChunkType(raw), body[4:])
	if computed != stored {
		return Chunk{}, &ChunkCRCError{Expected: stored, Computed: computed}
	}

	t, err := NewChunkType(raw)
	if err != nil {
		return Chunk{}, err
	}
	data := make([]byte, len(body)-4)
	copy(data, body[4:])
	return Chunk{typ: t, data: data, crc: stored}, nil
}

// received is the payload size implied by n bytes following the length
// field. Inputs too short to hold type and crc report zero.
func received(n int) uint32 {
	if n < 8 {
		return 0
	}
	return uint32(n - 8)
}

// Length is the payload length.
func (c Chunk) Length() uint32 { return uint32(len(c.data)) }

func (c Chunk) Type() ChunkType { return c.typ }

// Data returns the payload. Callers must not modify it.
func (c Chunk) Data() []byte { return c.data }

func (c Chunk) CRC() uint32 { return c.crc }

// DataAsString returns the payload as text, failing on invalid UTF-8.
func (c Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrInvalidUTF8
	}
	return string(c.data), nil
}

// String renders the payload text, or "" when the payload is not UTF-8.
func (c Chunk) String() string {
	s, err := c.DataAsString()
	if err != nil {
		return ""
	}
	return s
}

// Bytes serialises the chunk; DecodeChunk(c.Bytes()) reproduces c.
func (c Chunk) Bytes() []byte {
	return c.appendTo(make([]byte, 0, chunkOverhead+len(c.data)))
}

func (c Chunk) appendTo(out []byte) []byte {
	out = binary.BigEndian.AppendUint32(out, uint32(len(c.data)))
	out = append(out, c.typ[:]...)
	out = append(out, c.data...)
	return binary.BigEndian.AppendUint32(out, c.crc)
}

// Equal compares type, payload and crc.
func (c Chunk) Equal(o Chunk) bool {
	return c.typ == o.typ && c.crc == o.crc && bytes.Equal(c.data, o.data)
}
