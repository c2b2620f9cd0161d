// Package png implements the chunk layer of the PNG container format.
//
// A PNG file is an 8 byte signature followed by a sequence of chunks. Each
// chunk is a big-endian length, a 4 byte type, the payload and a CRC-32 of
// type and payload. The package parses whole buffers, lets callers add and
// remove chunks, and serialises the result back to bytes. It never decodes
// pixel data.
package png

import (
	"bytes"
	"encoding/binary"
)

// StandardHeader is the signature every PNG file starts with.
var StandardHeader = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

const (
	signatureSize = len(StandardHeader)

	// length + type + crc
	chunkOverhead = 12
)

// PNG is an ordered chunk sequence behind the fixed signature.
// A PNG is owned by a single caller; it is not safe for concurrent mutation.
type PNG struct {
	header [8]byte
	chunks []Chunk
}

// New builds a PNG with the standard signature from an explicit chunk list.
func New(chunks ...Chunk) *PNG {
	p := &PNG{header: StandardHeader}
	if len(chunks) > 0 {
		p.chunks = append(make([]Chunk, 0, len(chunks)), chunks...)
	}
	return p
}

// Parse validates the signature and decodes every chunk in data.
// The first malformed chunk aborts the parse.
func Parse(data []byte) (*PNG, error) {
	if len(data) < signatureSize || !bytes.Equal(data[:signatureSize], StandardHeader[:]) {
		return nil, ErrInvalidSignature
	}

	p := &PNG{header: StandardHeader}
	rest := data[signatureSize:]
	for len(rest) > 0 {
		n, err := recordSize(rest)
		if err != nil {
			return nil, err
		}
		c, err := DecodeChunk(rest[:n])
		if err != nil {
			return nil, err
		}
		p.chunks = append(p.chunks, c)
		rest = rest[n:]
	}
	return p, nil
}

// recordSize reports how many bytes of data the next chunk occupies.
func recordSize(data []byte) (int, error) {
	if len(data) < chunkOverhead {
		return 0, ErrTruncatedInput
	}
	length := binary.BigEndian.Uint32(data)
	// Overflow-safe on 32-bit platforms.
	avail := uint64(len(data)) - chunkOverhead
	if uint64(length) > avail {
		return 0, &ChunkLengthError{Expected: length, Received: uint32(avail)}
	}
	return int(length) + chunkOverhead, nil
}

// Header returns the signature bytes.
func (p *PNG) Header() [8]byte {
	return p.header
}

// Chunks returns the chunks in file order. The slice is a copy; Chunks are values.
func (p *PNG) Chunks() []Chunk {
	out := make([]Chunk, len(p.chunks))
	copy(out, p.chunks)
	return out
}

// Len returns the number of chunks.
func (p *PNG) Len() int {
	return len(p.chunks)
}

// AppendChunk adds c after the last chunk.
func (p *PNG) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)
}

// RemoveChunk removes the first chunk whose type equals chunkType and returns it.
func (p *PNG) RemoveChunk(chunkType string) (Chunk, error) {
	ct, err := ParseChunkType(chunkType)
	if err != nil {
		return Chunk{}, err
	}
	i := p.index(ct)
	if i < 0 {
		return Chunk{}, ErrChunkNotFound
	}
	removed := p.chunks[i]
	p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
	return removed, nil
}

// ChunkByType returns the first chunk whose type equals chunkType.
// A chunkType that is not a valid chunk type never matches.
func (p *PNG) ChunkByType(chunkType string) (Chunk, bool) {
	ct, err := ParseChunkType(chunkType)
	if err != nil {
		return Chunk{}, false
	}
	i := p.index(ct)
	if i < 0 {
		return Chunk{}, false
	}
	return p.chunks[i], true
}

func (p *PNG) index(ct ChunkType) int {
	for i := range p.chunks {
		if p.chunks[i].Type() == ct {
			return i
		}
	}
	return -1
}

// Bytes serialises the signature followed by every chunk in order.
func (p *PNG) Bytes() []byte {
	size := signatureSize
	for i := range p.chunks {
		size += chunkOverhead + len(p.chunks[i].data)
	}
	out := make([]byte, 0, size)
	out = append(out, p.header[:]...)
	for i := range p.chunks {
		out = p.chunks[i].appendTo(out)
	}
	return out
}

// Equal reports whether p and o have the same signature and chunk sequence.
func (p *PNG) Equal(o *PNG) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.header != o.header || len(p.chunks) != len(o.chunks) {
		return false
	}
	for i := range p.chunks {
		if !p.chunks[i].Equal(o.chunks[i]) {
			return false
		}
	}
	return true
}
