// Package stash implements the message operations offered by the pngme
// command line and HTTP API on top of a parsed PNG.
package stash

import (
	"github.com/samcharles93/pngme/pkg/png"
)

// Encode appends a chunk of type chunkType carrying message.
func Encode(p *png.PNG, chunkType, message string) (png.Chunk, error) {
	ct, err := png.ParseChunkType(chunkType)
	if err != nil {
		return png.Chunk{}, err
	}
	c := png.NewChunk(ct, []byte(message))
	p.AppendChunk(c)
	return c, nil
}

// Decode finds the first chunk of type chunkType. Unlike png.ChunkByType it
// reports a malformed chunkType instead of treating it as a miss.
func Decode(p *png.PNG, chunkType string) (png.Chunk, bool, error) {
	if _, err := png.ParseChunkType(chunkType); err != nil {
		return png.Chunk{}, false, err
	}
	c, ok := p.ChunkByType(chunkType)
	return c, ok, nil
}

// Remove deletes the first chunk of type chunkType.
func Remove(p *png.PNG, chunkType string) (png.Chunk, error) {
	return p.RemoveChunk(chunkType)
}

// Line is one printable chunk: its type and payload text.
type Line struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (l Line) String() string {
	return l.Type + "\t" + l.Message
}

// LineOf renders c as a Line, failing when the payload is not UTF-8.
func LineOf(c png.Chunk) (Line, error) {
	msg, err := c.DataAsString()
	if err != nil {
		return Line{}, err
	}
	return Line{Type: c.Type().String(), Message: msg}, nil
}

// Print returns a Line for every chunk whose payload is valid UTF-8.
func Print(p *png.PNG) []Line {
	var out []Line
	for _, c := range p.Chunks() {
		if l, err := LineOf(c); err == nil {
			out = append(out, l)
		}
	}
	return out
}
