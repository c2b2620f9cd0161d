package stash

import (
	"errors"
	"testing"

	"github.com/samcharles93/pngme/pkg/png"
)

func testPNG(t *testing.T) *png.PNG {
	t.Helper()
	hdr, err := png.ParseChunkType("IHDR")
	if err != nil {
		t.Fatalf("parse chunk type: %v", err)
	}
	end, err := png.ParseChunkType("IEND")
	if err != nil {
		t.Fatalf("parse chunk type: %v", err)
	}
	return png.New(
		png.NewChunk(hdr, []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}),
		png.NewChunk(end, nil),
	)
}

func TestEncodeDecodeRemove(t *testing.T) {
	t.Parallel()

	p := testPNG(t)
	c, err := Encode(p, "ruSt", "secret")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if c.Type().String() != "ruSt" {
		t.Fatalf("encoded type: got %s", c.Type())
	}

	got, ok, err := Decode(p, "ruSt")
	if err != nil || !ok {
		t.Fatalf("decode: ok=%v err=%v", ok, err)
	}
	line, err := LineOf(got)
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if line.String() != "ruSt\tsecret" {
		t.Fatalf("line: got %q", line.String())
	}

	if _, err := Remove(p, "ruSt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := Decode(p, "ruSt"); ok {
		t.Fatalf("chunk still present after remove")
	}
	if _, err := Remove(p, "ruSt"); !errors.Is(err, png.ErrChunkNotFound) {
		t.Fatalf("second remove: expected ErrChunkNotFound, got %v", err)
	}
}

func TestEncodeInvalidType(t *testing.T) {
	t.Parallel()

	p := testPNG(t)
	if _, err := Encode(p, "ru5t", "x"); !errors.Is(err, png.ErrInvalidTagBytes) {
		t.Fatalf("expected ErrInvalidTagBytes, got %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("failed encode changed the chunk count: %d", p.Len())
	}
}

func TestDecodeReportsMalformedType(t *testing.T) {
	t.Parallel()

	_, ok, err := Decode(testPNG(t), "bad")
	if ok || !errors.Is(err, png.ErrInvalidTagBytes) {
		t.Fatalf("expected ErrInvalidTagBytes, got ok=%v err=%v", ok, err)
	}
}

func TestPrintSkipsBinaryPayloads(t *testing.T) {
	t.Parallel()

	p := testPNG(t)
	if _, err := Encode(p, "tEXt", "hello"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	p.AppendChunk(png.NewChunk(png.ChunkType{'b', 'I', 'N', 'a'}, []byte{0xff, 0xfe}))

	lines := Print(p)
	// IHDR payload is valid UTF-8 (all bytes < 0x80), IEND is empty text.
	want := []string{"IHDR", "IEND", "tEXt"}
	if len(lines) != len(want) {
		t.Fatalf("line count: got %d want %d (%v)", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i].Type != w {
			t.Fatalf("line %d: got %s want %s", i, lines[i].Type, w)
		}
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	p := testPNG(t)
	if _, err := Encode(p, "Rust", "reserved bit set"); err != nil {
		t.Fatalf("encode: %v", err)
	}

	r := Inspect(p)
	if r.Count != 3 || len(r.Chunks) != 3 {
		t.Fatalf("count: got %d/%d want 3", r.Count, len(r.Chunks))
	}
	if r.Size != len(p.Bytes()) {
		t.Fatalf("size: got %d want %d", r.Size, len(p.Bytes()))
	}

	hdr := r.Chunks[0]
	if hdr.Type != "IHDR" || hdr.Length != 13 || !hdr.Critical || !hdr.Public || hdr.SafeToCopy {
		t.Fatalf("unexpected IHDR info: %+v", hdr)
	}
	last := r.Chunks[2]
	if last.Index != 2 || last.ReservedBitValid || !last.Text {
		t.Fatalf("unexpected Rust info: %+v", last)
	}
}
