package png

import "unicode/utf8"

// ChunkType is the 4 byte type code of a chunk. Property bits live in bit 5
// (the ASCII case bit) of each byte.
type ChunkType [4]byte

// NewChunkType validates that every byte is an ASCII letter.
func NewChunkType(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isASCIIAlpha(c) {
			return ChunkType{}, &TagBytesError{Bytes: b[:]}
		}
	}
	return ChunkType(b), nil
}

// ParseChunkType parses a 4 byte string such as "IHDR" or "ruSt".
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &TagBytesError{Bytes: []byte(s)}
	}
	return NewChunkType([4]byte{s[0], s[1], s[2], s[3]})
}

func isASCIIAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

const propertyBit = 0x20

func (t ChunkType) Bytes() [4]byte { return t }

// IsCritical reports whether decoders must understand the chunk.
func (t ChunkType) IsCritical() bool { return t[0]&propertyBit == 0 }

// IsPublic reports whether the type is registered (uppercase second letter).
func (t ChunkType) IsPublic() bool { return t[1]&propertyBit == 0 }

// IsReservedBitValid reports whether the reserved bit is clear.
func (t ChunkType) IsReservedBitValid() bool { return t[2]&propertyBit == 0 }

// IsSafeToCopy reports whether editors may copy the chunk without
// understanding it.
func (t ChunkType) IsSafeToCopy() bool { return t[3]&propertyBit != 0 }

// IsValid is IsReservedBitValid. The letter check happens at construction.
func (t ChunkType) IsValid() bool { return t.IsReservedBitValid() }

// Text renders the type as a string, failing when the bytes are not UTF-8.
// Only a ChunkType built without NewChunkType can fail here.
func (t ChunkType) Text() (string, error) {
	if !utf8.Valid(t[:]) {
		return "", ErrInvalidUTF8
	}
	return string(t[:]), nil
}

func (t ChunkType) String() string {
	return string(t[:])
}
