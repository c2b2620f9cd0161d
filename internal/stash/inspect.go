package stash

import "github.com/samcharles93/pngme/pkg/png"

// ChunkInfo describes one chunk for the inspect report.
type ChunkInfo struct {
	Index            int    `json:"index"`
	Type             string `json:"type"`
	Length           uint32 `json:"length"`
	CRC              uint32 `json:"crc"`
	Critical         bool   `json:"critical"`
	Public           bool   `json:"public"`
	ReservedBitValid bool   `json:"reserved_bit_valid"`
	SafeToCopy       bool   `json:"safe_to_copy"`
	Text             bool   `json:"text"`
}

// Report summarises a PNG container.
type Report struct {
	Size   int         `json:"size"`
	Count  int         `json:"count"`
	Chunks []ChunkInfo `json:"chunks"`
}

// Info builds the ChunkInfo for c at position index.
func Info(index int, c png.Chunk) ChunkInfo {
	t := c.Type()
	_, err := c.DataAsString()
	return ChunkInfo{
		Index:            index,
		Type:             t.String(),
		Length:           c.Length(),
		CRC:              c.CRC(),
		Critical:         t.IsCritical(),
		Public:           t.IsPublic(),
		ReservedBitValid: t.IsReservedBitValid(),
		SafeToCopy:       t.IsSafeToCopy(),
		Text:             err == nil,
	}
}

// Inspect reports every chunk of p in file order.
func Inspect(p *png.PNG) Report {
	chunks := p.Chunks()
	r := Report{
		Count:  len(chunks),
		Chunks: make([]ChunkInfo, 0, len(chunks)),
	}
	size := len(png.StandardHeader)
	for i, c := range chunks {
		r.Chunks = append(r.Chunks, Info(i, c))
		size += 12 + int(c.Length())
	}
	r.Size = size
	return r
}
