package forms

import (
	"log/slog"
	"sync"

	"github.com/garnizeh/portfolio/internal/preview"
	"github.com/garnizeh/portfolio/pkg/upload"
)

// MaxGallery is the number of gallery files kept from one selection.
const MaxGallery = 7

// FileEvent is raised by the presentation layer for a file input.
type FileEvent interface {
	field() string
}

// FileSelected carries the files picked for the input named Field.
type FileSelected struct {
	Field string
	Files []upload.File
}

// FileLoadFailed reports that the preview shown for Field could not be loaded.
type FileLoadFailed struct {
	Field string
	Name  string
	Err   error
}

func (e FileSelected) field() string   { return e.Field }
func (e FileLoadFailed) field() string { return e.Field }

type staged struct {
	file    upload.File
	preview string
	err     error
}

// stager renders previews off the caller's goroutine and lets tests wait for them.
type stager struct {
	renderer preview.Renderer
	logger   *slog.Logger
	wg       sync.WaitGroup
}

func (s *stager) render(mu *sync.Mutex, item *staged) {
	if s.renderer == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		url, err := s.renderer.Render(item.file)
		if err != nil {
			s.logger.Warn("preview render failed", slog.String("file", item.file.Name), slog.Any("err", err))
		}
		mu.Lock()
		item.preview, item.err = url, err
		mu.Unlock()
	}()
}

// Slot holds at most one staged file plus the URL of the already stored one.
type Slot struct {
	mu       sync.Mutex
	item     *staged
	existing string
	st       *stager
}

// Select stages f, replacing any previous selection.
func (s *Slot) Select(f upload.File) {
	item := &staged{file: f}
	s.mu.Lock()
	s.item = item
	s.mu.Unlock()
	s.st.render(&s.mu, item)
}

// Remove clears the staged file and its preview.
func (s *Slot) Remove() {
	s.mu.Lock()
	s.item = nil
	s.mu.Unlock()
}

func (s *Slot) File() (upload.File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.item == nil {
		return upload.File{}, false
	}
	return s.item.file, true
}

// Preview is the staged file's preview, or the stored photo URL when nothing is staged.
func (s *Slot) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.item != nil {
		return s.item.preview
	}
	return s.existing
}

func (s *Slot) PreviewErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.item == nil {
		return nil
	}
	return s.item.err
}

func (s *Slot) setExisting(url string) {
	s.mu.Lock()
	s.existing = url
	s.mu.Unlock()
}

// Gallery holds up to MaxGallery staged files in selection order.
type Gallery struct {
	mu    sync.Mutex
	items []*staged
	st    *stager
}

// Select replaces the selection, silently keeping the first MaxGallery files.
// It returns how many files were kept.
func (g *Gallery) Select(files []upload.File) int {
	if len(files) == 0 {
		return 0
	}
	if len(files) > MaxGallery {
		files = files[:MaxGallery]
	}

	items := make([]*staged, len(files))
	for i, f := range files {
		items[i] = &staged{file: f}
	}
	g.mu.Lock()
	g.items = items
	g.mu.Unlock()

	for _, item := range items {
		g.st.render(&g.mu, item)
	}
	return len(items)
}

// RemoveAt drops the file and preview at index i.
func (g *Gallery) RemoveAt(i int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if i < 0 || i >= len(g.items) {
		return false
	}
	g.items = append(g.items[:i], g.items[i+1:]...)
	return true
}

func (g *Gallery) Files() []upload.File {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]upload.File, len(g.items))
	for i, item := range g.items {
		out[i] = item.file
	}
	return out
}

// Previews is aligned with Files; entries still rendering are empty.
func (g *Gallery) Previews() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.items))
	for i, item := range g.items {
		out[i] = item.preview
	}
	return out
}

func (g *Gallery) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}
