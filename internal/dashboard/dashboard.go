// Package dashboard holds the admin overview: entity counts, recent records
// and the confirmed delete used by every entity list.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/portfolio"
)

// API is the part of the entity client the dashboard needs.
type API interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Delete(ctx context.Context, kind models.Kind, id string) error
}

// Shell is the presentation layer seen by the dashboard.
type Shell interface {
	Confirm(message string) bool
	Alert(message string)
}

type Controller struct {
	api    API
	shell  Shell
	logger *slog.Logger

	mu       sync.Mutex
	snapshot models.Dashboard
	loaded   bool
}

func New(api API, shell Shell, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{api: api, shell: shell, logger: logger}
}

// Refresh replaces the snapshot with a fresh one. On failure the previous
// snapshot is kept.
func (c *Controller) Refresh(ctx context.Context) error {
	d, err := c.api.Dashboard(ctx)
	if err != nil {
		c.logger.Error("dashboard fetch failed", slog.Any("err", err))
		return fmt.Errorf("refresh dashboard: %w", err)
	}
	c.mu.Lock()
	c.snapshot = *d
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Snapshot returns the last fetched dashboard and whether one was loaded.
func (c *Controller) Snapshot() (models.Dashboard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.loaded
}

func (c *Controller) Counts() models.Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.Counts
}

// Delete asks for confirmation and deletes the record. It reports whether the
// record was deleted. A declined prompt makes no call.
func (c *Controller) Delete(ctx context.Context, kind models.Kind, id, name string) (bool, error) {
	if !c.shell.Confirm(fmt.Sprintf("Are you sure you want to delete %s \"%s\"?", kind, name)) {
		return false, nil
	}

	if err := c.api.Delete(ctx, kind, id); err != nil {
		c.logger.Error("delete failed", slog.String("kind", string(kind)), slog.String("id", id), slog.Any("err", err))
		c.shell.Alert(fmt.Sprintf("Error deleting %s: %s", kind, portfolio.Message(err)))
		return false, fmt.Errorf("delete %s %s: %w", kind, id, err)
	}

	c.shell.Alert(kind.Title() + " deleted successfully!")
	if err := c.Refresh(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Entry is one row of a recent records list.
type Entry struct {
	Kind models.Kind
	ID   string
	Name string
}

// Recent lists the recent records of every kind in the snapshot.
func (c *Controller) Recent() []Entry {
	c.mu.Lock()
	r := c.snapshot.Recent
	c.mu.Unlock()

	var out []Entry
	out = appendEntries(out, models.KindUser, r.Users, func(u models.User) string { return u.ID })
	out = appendEntries(out, models.KindExperience, r.Experiences, func(e models.Experience) string { return e.ID })
	out = appendEntries(out, models.KindProject, r.Projects, func(p models.Project) string { return p.ID })
	out = appendEntries(out, models.KindSkill, r.Skills, func(s models.Skill) string { return s.ID })
	out = appendEntries(out, models.KindCertificate, r.Certificates, func(c models.Certificate) string { return c.ID })
	out = appendEntries(out, models.KindCompetition, r.Competitions, func(c models.Competition) string { return c.ID })
	out = appendEntries(out, models.KindInternship, r.Internships, func(i models.Internship) string { return i.ID })
	return out
}

func appendEntries[T interface{ DisplayName() string }](out []Entry, kind models.Kind, items []T, id func(T) string) []Entry {
	for _, it := range items {
		out = append(out, Entry{Kind: kind, ID: id(it), Name: it.DisplayName()})
	}
	return out
}
