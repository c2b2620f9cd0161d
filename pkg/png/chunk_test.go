package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
)

const testMessage = "This is where your secret message will be!"

func testingChunkBytes(crc uint32) []byte {
	var b []byte
	b = binary.BigEndian.AppendUint32(b, uint32(len(testMessage)))
	b = append(b, "RuSt"...)
	b = append(b, testMessage...)
	return binary.BigEndian.AppendUint32(b, crc)
}

func testingChunk(t *testing.T) Chunk {
	t.Helper()
	c, err := DecodeChunk(testingChunkBytes(2882656334))
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	return c
}

func mustChunk(t *testing.T, typ, data string) Chunk {
	t.Helper()
	ct, err := ParseChunkType(typ)
	if err != nil {
		t.Fatalf("ParseChunkType(%q): %v", typ, err)
	}
	return NewChunk(ct, []byte(data))
}

// referenceCRC is the bit-at-a-time CRC-32 from the PNG specification.
func referenceCRC(b []byte) uint32 {
	crc := uint32(0xffffffff)
	for _, v := range b {
		crc ^= uint32(v)
		for k := 0; k < 8; k++ {
			if crc&1 != 0 {
				crc = 0xedb88320 ^ (crc >> 1)
			} else {
				crc >>= 1
			}
		}
	}
	return crc ^ 0xffffffff
}

func TestNewChunk(t *testing.T) {
	t.Parallel()

	c := mustChunk(t, "RuSt", testMessage)
	if c.Length() != 42 {
		t.Fatalf("length: got %d want 42", c.Length())
	}
	if c.CRC() != 2882656334 {
		t.Fatalf("crc: got %d want 2882656334", c.CRC())
	}
	if c.Type().String() != "RuSt" {
		t.Fatalf("type: got %q", c.Type().String())
	}
	ct := c.Type()
	if !ct.IsCritical() || ct.IsPublic() || !ct.IsReservedBitValid() || !ct.IsSafeToCopy() {
		t.Fatalf("unexpected property bits for %s", ct)
	}
}

func TestNewChunkCopiesData(t *testing.T) {
	t.Parallel()

	data := []byte("hello")
	c := NewChunk(ChunkType{'t', 'E', 'X', 't'}, data)
	data[0] = 'j'
	if string(c.Data()) != "hello" {
		t.Fatalf("chunk aliases caller data: %q", c.Data())
	}
}

func TestChunkCRCMatchesReference(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "a", testMessage, string(bytes.Repeat([]byte{0, 0xff, 0x55}, 1000))}
	for _, in := range inputs {
		c := NewChunk(ChunkType{'I', 'D', 'A', 'T'}, []byte(in))
		want := referenceCRC(append([]byte("IDAT"), in...))
		if c.CRC() != want {
			t.Fatalf("crc for %d bytes: got %#x want %#x", len(in), c.CRC(), want)
		}
	}
}

func TestChunkCRCConcurrent(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	errs := make(chan uint32, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := NewChunk(ChunkType{'R', 'u', 'S', 't'}, []byte(testMessage))
			if c.CRC() != 2882656334 {
				errs <- c.CRC()
			}
		}()
	}
	wg.Wait()
	close(errs)
	for crc := range errs {
		t.Fatalf("concurrent crc mismatch: %d", crc)
	}
}

func TestDecodeChunk(t *testing.T) {
	t.Parallel()

	c := testingChunk(t)
	if c.Length() != 42 {
		t.Fatalf("length: got %d", c.Length())
	}
	if c.Type().String() != "RuSt" {
		t.Fatalf("type: got %q", c.Type())
	}
	if c.CRC() != 2882656334 {
		t.Fatalf("crc: got %d", c.CRC())
	}
	s, err := c.DataAsString()
	if err != nil {
		t.Fatalf("DataAsString: %v", err)
	}
	if s != testMessage {
		t.Fatalf("data: got %q", s)
	}
	if c.String() != testMessage {
		t.Fatalf("String: got %q", c.String())
	}
}

func TestDecodeChunkInvalidCRC(t *testing.T) {
	t.Parallel()

	_, err := DecodeChunk(testingChunkBytes(2882656333))
	if !errors.Is(err, ErrInvalidChunkCRC) {
		t.Fatalf("expected ErrInvalidChunkCRC, got %v", err)
	}
	var crcErr *ChunkCRCError
	if !errors.As(err, &crcErr) {
		t.Fatalf("expected *ChunkCRCError, got %T", err)
	}
	if crcErr.Expected != 2882656333 || crcErr.Computed != 2882656334 {
		t.Fatalf("unexpected crc error fields: %+v", crcErr)
	}
}

func TestDecodeChunkTruncated(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{nil, {0}, {0, 0}, {0, 0, 0}} {
		if _, err := DecodeChunk(in); !errors.Is(err, ErrTruncatedInput) {
			t.Fatalf("%d bytes: expected ErrTruncatedInput, got %v", len(in), err)
		}
	}
}

func TestDecodeChunkLengthMismatch(t *testing.T) {
	t.Parallel()

	valid := testingChunkBytes(2882656334)
	payloadEnd := len(valid) - 4

	t.Run("truncated payload", func(t *testing.T) {
		in := append(append([]byte{}, valid[:payloadEnd-1]...), valid[payloadEnd:]...)
		_, err := DecodeChunk(in)
		var lenErr *ChunkLengthError
		if !errors.As(err, &lenErr) {
			t.Fatalf("expected *ChunkLengthError, got %v", err)
		}
		if lenErr.Expected != 42 || lenErr.Received != 41 {
			t.Fatalf("unexpected length error fields: %+v", lenErr)
		}
	})

	t.Run("padded payload", func(t *testing.T) {
		in := append(append(append([]byte{}, valid[:payloadEnd]...), 'x'), valid[payloadEnd:]...)
		_, err := DecodeChunk(in)
		var lenErr *ChunkLengthError
		if !errors.As(err, &lenErr) {
			t.Fatalf("expected *ChunkLengthError, got %v", err)
		}
		if lenErr.Expected != 42 || lenErr.Received != 43 {
			t.Fatalf("unexpected length error fields: %+v", lenErr)
		}
	})

	t.Run("no room for type and crc", func(t *testing.T) {
		_, err := DecodeChunk([]byte{0, 0, 0, 0, 'a', 'b'})
		if !errors.Is(err, ErrInvalidChunkLength) {
			t.Fatalf("expected ErrInvalidChunkLength, got %v", err)
		}
	})
}

func TestDecodeChunkInvalidType(t *testing.T) {
	t.Parallel()

	// The crc is valid, so the type check is what fails.
	bad := Chunk{typ: ChunkType{'R', 'u', '1', 't'}, data: []byte("x")}
	bad.crc = chunkCRC(bad.typ, bad.data)
	if _, err := DecodeChunk(bad.Bytes()); !errors.Is(err, ErrInvalidTagBytes) {
		t.Fatalf("expected ErrInvalidTagBytes, got %v", err)
	}
}

func TestChunkTamperDetected(t *testing.T) {
	t.Parallel()

	valid := testingChunkBytes(2882656334)
	// Every single-bit flip after the length field must be caught by the crc.
	for i := 4; i < len(valid); i++ {
		for bit := 0; bit < 8; bit++ {
			in := append([]byte{}, valid...)
			in[i] ^= 1 << bit
			if _, err := DecodeChunk(in); !errors.Is(err, ErrInvalidChunkCRC) {
				t.Fatalf("flip byte %d bit %d: expected ErrInvalidChunkCRC, got %v", i, bit, err)
			}
		}
	}
}

func TestChunkRoundTrip(t *testing.T) {
	t.Parallel()

	chunks := []Chunk{
		mustChunk(t, "RuSt", testMessage),
		mustChunk(t, "IEND", ""),
		NewChunk(ChunkType{'z', 'Z', 'z', 'Z'}, []byte{0, 1, 2, 0xff, 0xfe}),
	}
	for _, c := range chunks {
		got, err := DecodeChunk(c.Bytes())
		if err != nil {
			t.Fatalf("DecodeChunk(%s): %v", c.Type(), err)
		}
		if !got.Equal(c) {
			t.Fatalf("round trip mismatch for %s", c.Type())
		}
	}
}

func TestChunkBytesLayout(t *testing.T) {
	t.Parallel()

	c := mustChunk(t, "RuSt", testMessage)
	if !bytes.Equal(c.Bytes(), testingChunkBytes(2882656334)) {
		t.Fatalf("serialised layout mismatch:\n got %x\nwant %x", c.Bytes(), testingChunkBytes(2882656334))
	}
}

func TestDecodeChunkDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := testingChunkBytes(2882656334)
	c, err := DecodeChunk(in)
	if err != nil {
		t.Fatalf("DecodeChunk: %v", err)
	}
	in[8] = 'X'
	if c.String() != testMessage {
		t.Fatalf("chunk data changed with input buffer: %q", c.String())
	}
}

func TestDataAsStringInvalidUTF8(t *testing.T) {
	t.Parallel()

	c := NewChunk(ChunkType{'b', 'L', 'O', 'b'}, []byte{0xc3, 0x28})
	if _, err := c.DataAsString(); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	if c.String() != "" {
		t.Fatalf("String on invalid utf-8: got %q", c.String())
	}
}
