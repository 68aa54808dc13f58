// Package forms drives the admin entity forms: validation, create or update,
// then the uploads that depend on the persisted entity id.
package forms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/garnizeh/portfolio/internal/preview"
	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/portfolio"
	"github.com/garnizeh/portfolio/pkg/upload"
)

// AdminPath is where a completed form navigates to.
const AdminPath = "/admin"

var (
	ErrSubmitting   = errors.New("a submission is already in progress")
	ErrUnknownField = errors.New("unknown file field")
)

// Shell is the presentation layer seen by a form.
type Shell interface {
	Alert(message string)
	Navigate(path string)
}

// Resource is the slice of the API client a form needs for one entity.
type Resource[T, In any] interface {
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id string, in In) (*T, error)
}

type Uploader interface {
	UploadOne(ctx context.Context, endpoint string, f upload.File) (*upload.Ack, error)
	UploadMany(ctx context.Context, endpoint string, files []upload.File) (*upload.Ack, error)
}

// Links resolves admin endpoints and stored image URLs.
type Links interface {
	AdminURL(elem ...string) string
	ImageURL(filename string) string
}

// Deps are shared by every form controller.
type Deps struct {
	Shell    Shell
	Uploader Uploader
	Links    Links
	Renderer preview.Renderer
	Logger   *slog.Logger
	// OnProgress observes the upload progress of a submission.
	OnProgress func(percent int)
}

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// Result describes a completed submission.
type Result[T any] struct {
	Entity  *T
	ID      string
	Uploads []ChannelResult
}

// Failed returns the upload channels that did not succeed.
func (r *Result[T]) Failed() []ChannelResult {
	var out []ChannelResult
	for _, u := range r.Uploads {
		if !u.OK() {
			out = append(out, u)
		}
	}
	return out
}

// binding ties the generic controller to one entity kind.
type binding[F, T, In any] struct {
	kind     models.Kind
	build    func(f *F) (In, error)
	fill     func(f *F, e *T)
	entityID func(e *T) string
	// preload fills a create form from an existing record, if any.
	preload func(ctx context.Context) (*T, error)
}

// Controller is the form state machine shared by every entity form. F is the
// form struct, T the stored record and In the write record.
type Controller[F, T, In any] struct {
	bind binding[F, T, In]
	res  Resource[T, In]
	deps Deps
	id   string

	st        *stager
	slots     map[string]*Slot
	galleries map[string]*Gallery
	channels  func(id string) []Channel

	mu         sync.Mutex
	form       F
	submitting bool
	progress   int
}

func newController[F, T, In any](s binding[F, T, In], res Resource[T, In], deps Deps, id string, initial F) *Controller[F, T, In] {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Renderer == nil {
		deps.Renderer = preview.NewThumbnailer(0, 0)
	}
	return &Controller[F, T, In]{
		bind:      s,
		res:       res,
		deps:      deps,
		id:        id,
		st:        &stager{renderer: deps.Renderer, logger: deps.Logger},
		slots:     map[string]*Slot{},
		galleries: map[string]*Gallery{},
		form:      initial,
	}
}

func (c *Controller[F, T, In]) slot(field string) *Slot {
	s := &Slot{st: c.st}
	c.slots[field] = s
	return s
}

func (c *Controller[F, T, In]) gallery(field string) *Gallery {
	g := &Gallery{st: c.st}
	c.galleries[field] = g
	return g
}

func (c *Controller[F, T, In]) Kind() models.Kind { return c.bind.kind }

func (c *Controller[F, T, In]) ID() string { return c.id }

// Mode is update when the form was opened with a route id.
func (c *Controller[F, T, In]) Mode() Mode {
	if c.id != "" {
		return ModeUpdate
	}
	return ModeCreate
}

// Form returns a copy of the current form values.
func (c *Controller[F, T, In]) Form() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Edit mutates the form values under the controller lock.
func (c *Controller[F, T, In]) Edit(fn func(f *F)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

func (c *Controller[F, T, In]) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller[F, T, In]) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// WaitPreviews blocks until every pending preview render has finished.
func (c *Controller[F, T, In]) WaitPreviews() { c.st.wg.Wait() }

// HandleFileEvent applies a file input event to the matching staging area.
func (c *Controller[F, T, In]) HandleFileEvent(ev FileEvent) error {
	slot, isSlot := c.slots[ev.field()]
	gal, isGallery := c.galleries[ev.field()]
	if !isSlot && !isGallery {
		return fmt.Errorf("%w: %q", ErrUnknownField, ev.field())
	}

	switch e := ev.(type) {
	case FileSelected:
		if len(e.Files) == 0 {
			return nil
		}
		if isSlot {
			slot.Select(e.Files[0])
			return nil
		}
		gal.Select(e.Files)
	case FileLoadFailed:
		c.deps.Logger.Warn("image failed to load", slog.String("field", e.Field), slog.String("name", e.Name), slog.Any("err", e.Err))
		if isSlot {
			slot.setExisting("")
		}
	}
	return nil
}

// Load populates the form from the stored record in update mode. Some create
// forms start from an existing record instead. Failures leave the form editable.
func (c *Controller[F, T, In]) Load(ctx context.Context) error {
	var (
		entity *T
		err    error
	)
	switch {
	case c.id != "":
		entity, err = c.res.Get(ctx, c.id)
	case c.bind.preload != nil:
		entity, err = c.bind.preload(ctx)
		if portfolio.IsNotFound(err) || errors.Is(err, portfolio.ErrNoData) {
			return nil
		}
	default:
		return nil
	}
	if err != nil {
		c.deps.Logger.Error("load failed", slog.String("kind", string(c.bind.kind)), slog.String("id", c.id), slog.Any("err", err))
		return fmt.Errorf("load %s: %w", c.bind.kind, err)
	}

	c.mu.Lock()
	c.bind.fill(&c.form, entity)
	c.mu.Unlock()
	return nil
}

// Submit validates the form, writes the entity and then runs the dependent
// uploads. A validation failure returns a *ValidationError with no network
// traffic. A failed write alerts the shell and keeps the form as is. Once the
// write succeeds, every upload is attempted, and the form navigates away when
// all of them resolved, whatever their outcome.
func (c *Controller[F, T, In]) Submit(ctx context.Context) (*Result[T], error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitting
	}
	form := c.form
	if err := Validate(&form); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	in, err := c.bind.build(&form)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.submitting = true
	c.mu.Unlock()
	c.setProgress(0)

	mode := c.Mode()
	var entity *T
	if mode == ModeUpdate {
		entity, err = c.res.Update(ctx, c.id, in)
	} else {
		entity, err = c.res.Create(ctx, in)
	}
	if err != nil {
		verb := "creating"
		if mode == ModeUpdate {
			verb = "updating"
		}
		c.deps.Logger.Error("save failed", slog.String("kind", string(c.bind.kind)), slog.String("mode", mode.String()), slog.Any("err", err))
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
		c.deps.Shell.Alert(fmt.Sprintf("Error %s %s: %s", verb, c.bind.kind, portfolio.Message(err)))
		return nil, fmt.Errorf("%s %s: %w", verb, c.bind.kind, err)
	}

	id := c.id
	if mode == ModeCreate {
		id = c.bind.entityID(entity)
	}

	var channels []Channel
	if c.channels != nil {
		if id != "" {
			channels = c.channels(id)
		} else {
			c.deps.Logger.Warn("saved entity has no id, skipping uploads", slog.String("kind", string(c.bind.kind)))
		}
	}

	res := &Result[T]{Entity: entity, ID: id}
	res.Uploads = join(ctx, channels, c.setProgress)
	for _, r := range res.Failed() {
		c.deps.Logger.Error("upload failed", slog.String("kind", string(c.bind.kind)), slog.String("id", id), slog.String("channel", r.Name), slog.Any("err", r.Err))
	}

	c.complete()
	return res, nil
}

func (c *Controller[F, T, In]) setProgress(p int) {
	c.mu.Lock()
	c.progress = p
	c.mu.Unlock()
	if c.deps.OnProgress != nil {
		c.deps.OnProgress(p)
	}
}

func (c *Controller[F, T, In]) complete() {
	if c.Progress() != 100 {
		c.setProgress(100)
	}
	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()
	c.deps.Shell.Navigate(AdminPath)
}

func uploadOne(deps Deps, name string, f upload.File, elem ...string) Channel {
	endpoint := deps.Links.AdminURL(elem...)
	return Channel{Name: name, Run: func(ctx context.Context) error {
		_, err := deps.Uploader.UploadOne(ctx, endpoint, f)
		return err
	}}
}

func uploadMany(deps Deps, name string, files []upload.File, elem ...string) Channel {
	endpoint := deps.Links.AdminURL(elem...)
	return Channel{Name: name, Run: func(ctx context.Context) error {
		_, err := deps.Uploader.UploadMany(ctx, endpoint, files)
		return err
	}}
}
