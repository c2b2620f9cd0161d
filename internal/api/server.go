// Package api serves the pngme message operations over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/stash"
	"github.com/samcharles93/pngme/pkg/png"
)

// DefaultMaxUploadBytes bounds uploaded image size.
const DefaultMaxUploadBytes = 32 << 20

type Server struct {
	store     *ImageStore
	log       logger.Logger
	maxUpload int64
	clock     func() time.Time
}

type ServerConfig struct {
	Store          *ImageStore
	Logger         logger.Logger
	MaxUploadBytes int64
}

func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		store:     cfg.Store,
		log:       cfg.Logger,
		maxUpload: cfg.MaxUploadBytes,
		clock:     time.Now,
	}
	if s.store == nil {
		s.store = NewImageStore()
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	return s
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/images", s.handleUpload)
	e.GET("/v1/images/:id", s.handleDownload)
	e.DELETE("/v1/images/:id", s.handleDeleteImage)

	e.GET("/v1/images/:id/chunks", s.handleInspect)
	e.POST("/v1/images/:id/chunks", s.handleEncode)
	e.GET("/v1/images/:id/chunks/:type", s.handleDecode)
	e.DELETE("/v1/images/:id/chunks/:type", s.handleRemove)
}

func (s *Server) handleUpload(c *echo.Context) error {
	data, err := readLimited(c.Request().Body, s.maxUpload)
	if err != nil {
		return writeErr(c, err)
	}
	p, err := png.Parse(data)
	if err != nil {
		return writeErr(c, err)
	}
	now := s.clock()
	id := s.store.Put(p, now)
	s.log.Info("image stored", "id", id, "chunks", p.Len(), "size", len(data))
	return c.JSON(http.StatusCreated, ImageResponse{
		ID:        id,
		Object:    "image",
		CreatedAt: now.Unix(),
		Count:     p.Len(),
		Size:      len(data),
	})
}

func (s *Server) handleDownload(c *echo.Context) error {
	id := c.Param("id")
	var data []byte
	err := s.store.With(id, func(p *png.PNG) error {
		data = p.Bytes()
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	if at, ok := s.store.CreatedAt(id); ok {
		c.Response().Header().Set("X-Uploaded-At", at.UTC().Format(http.TimeFormat))
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

func (s *Server) handleDeleteImage(c *echo.Context) error {
	id := c.Param("id")
	if !s.store.Delete(id) {
		return writeErr(c, ErrImageNotFound)
	}
	return c.JSON(http.StatusOK, DeletedResponse{ID: id, Object: "image.deleted", Deleted: true})
}

func (s *Server) handleInspect(c *echo.Context) error {
	var report stash.Report
	err := s.store.With(c.Param("id"), func(p *png.PNG) error {
		report = stash.Inspect(p)
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleEncode(c *echo.Context) error {
	req, err := decodeJSON[ChunkRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	if req.Type == "" {
		return writeBadRequest(c, "type is required")
	}

	var info stash.ChunkInfo
	err = s.store.With(c.Param("id"), func(p *png.PNG) error {
		chunk, err := stash.Encode(p, req.Type, req.Message)
		if err != nil {
			return err
		}
		if !chunk.Type().IsValid() {
			s.log.Warn("chunk type has reserved bit set", "type", req.Type)
		}
		info = stash.Info(p.Len()-1, chunk)
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, ChunkResponse{Object: "chunk", Chunk: info})
}

func (s *Server) handleDecode(c *echo.Context) error {
	var line stash.Line
	err := s.store.With(c.Param("id"), func(p *png.PNG) error {
		chunk, ok, err := stash.Decode(p, c.Param("type"))
		if err != nil {
			return err
		}
		if !ok {
			return png.ErrChunkNotFound
		}
		line, err = stash.LineOf(chunk)
		return err
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Object: "message", Type: line.Type, Message: line.Message})
}

func (s *Server) handleRemove(c *echo.Context) error {
	var info stash.ChunkInfo
	err := s.store.With(c.Param("id"), func(p *png.PNG) error {
		idx := -1
		for i, ch := range p.Chunks() {
			if ch.Type().String() == c.Param("type") {
				idx = i
				break
			}
		}
		chunk, err := stash.Remove(p, c.Param("type"))
		if err != nil {
			return err
		}
		info = stash.Info(idx, chunk)
		return nil
	})
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, ChunkResponse{Object: "chunk.deleted", Chunk: info})
}
