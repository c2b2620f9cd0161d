package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/pngme/pkg/png"
)

type imageRecord struct {
	png       *png.PNG
	createdAt time.Time
}

// CreatedAt reports when the image id was uploaded.
func (s *ImageStore) CreatedAt(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.images[id]
	if !ok {
		return time.Time{}, false
	}
	return rec.createdAt, true
}

// ImageStore keeps uploaded images in memory. A png.PNG is not safe for
// concurrent use, so every access goes through the store's lock.
type ImageStore struct {
	mu     sync.Mutex
	images map[string]*imageRecord
}

func NewImageStore() *ImageStore {
	return &ImageStore{
		images: make(map[string]*imageRecord),
	}
}

// Put stores p under a fresh id.
func (s *ImageStore) Put(p *png.PNG, now time.Time) string {
	id := "img_" + uuid.NewString()
	s.mu.Lock()
	s.images[id] = &imageRecord{png: p, createdAt: now}
	s.mu.Unlock()
	return id
}

// With runs fn on the image id while holding the store lock.
func (s *ImageStore) With(id string, fn func(p *png.PNG) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.images[id]
	if !ok {
		return ErrImageNotFound
	}
	return fn(rec.png)
}

func (s *ImageStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; !ok {
		return false
	}
	delete(s.images, id)
	return true
}

func (s *ImageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.images)
}
