package api

import "github.com/samcharles93/pngme/internal/stash"

type ImageResponse struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Count     int    `json:"count"`
	Size      int    `json:"size"`
}

type ChunkRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ChunkResponse struct {
	Object string          `json:"object"`
	Chunk  stash.ChunkInfo `json:"chunk"`
}

type MessageResponse struct {
	Object  string `json:"object"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

type DeletedResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
}
