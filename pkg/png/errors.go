package png

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTagBytes    = errors.New("invalid chunk type bytes")
	ErrTruncatedInput     = errors.New("truncated chunk input")
	ErrInvalidChunkLength = errors.New("invalid chunk length")
	ErrInvalidChunkCRC    = errors.New("invalid chunk crc")
	ErrInvalidUTF8        = errors.New("invalid utf-8")
	ErrInvalidSignature   = errors.New("invalid PNG signature")
	ErrChunkNotFound      = errors.New("chunk not found")
)

// TagBytesError reports a chunk type that is not 4 ASCII letters.
type TagBytesError struct {
	Bytes []byte
}

func (e *TagBytesError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidTagBytes, e.Bytes)
}

func (e *TagBytesError) Unwrap() error { return ErrInvalidTagBytes }

// ChunkLengthError reports a declared length that disagrees with the bytes
// that follow it.
type ChunkLengthError struct {
	Expected uint32
	Received uint32
}

func (e *ChunkLengthError) Error() string {
	return fmt.Sprintf("%v: expected %d, got %d", ErrInvalidChunkLength, e.Expected, e.Received)
}

func (e *ChunkLengthError) Unwrap() error { return ErrInvalidChunkLength }

// ChunkCRCError reports a stored checksum (Expected) that does not match the
// one computed over type and payload.
type ChunkCRCError struct {
	Expected uint32
	Computed uint32
}

func (e *ChunkCRCError) Error() string {
	return fmt.Sprintf("%v: expected 0x%x, got 0x%x", ErrInvalidChunkCRC, e.Expected, e.Computed)
}

func (e *ChunkCRCError) Unwrap() error { return ErrInvalidChunkCRC }
