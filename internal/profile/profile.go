// Package profile loads the public portfolio page.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/garnizeh/portfolio/pkg/models"
	"github.com/garnizeh/portfolio/pkg/portfolio"
)

// Source is the public read surface of the entity client.
type Source interface {
	Profile(ctx context.Context) (*models.User, error)
	Objective(ctx context.Context) (*models.Objective, error)
	Skills() *portfolio.Resource[models.Skill, models.SkillInput]
	Projects() *portfolio.Resource[models.Project, models.ProjectInput]
	Certificates() *portfolio.Resource[models.Certificate, models.CertificateInput]
	Competitions() *portfolio.Resource[models.Competition, models.CompetitionInput]
	Experiences() *portfolio.Resource[models.Experience, models.ExperienceInput]
	Internships() *portfolio.Resource[models.Internship, models.InternshipInput]
}

// Page is the public profile. A section that failed to load stays empty and
// its error is kept in Errors, keyed by section name.
type Page struct {
	User         *models.User
	Objective    *models.Objective
	Skills       []models.Skill
	Projects     []models.Project
	Certificates []models.Certificate
	Competitions []models.Competition
	Experiences  []models.Experience
	Internships  []models.Internship

	Errors map[string]error `json:"-" yaml:"-"`
}

// OK reports whether every section loaded.
func (p *Page) OK() bool { return len(p.Errors) == 0 }

// Load fetches every section concurrently. Sections fail independently; Load
// itself only returns an error when ctx ended, along with what did load.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Page, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		page = &Page{Errors: map[string]error{}}
		mu   sync.Mutex
		g    errgroup.Group
	)
	section := func(name string, fetch func() error) {
		g.Go(func() error {
			if err := fetch(); err != nil {
				logger.Warn("profile section failed", slog.String("section", name), slog.Any("err", err))
				mu.Lock()
				page.Errors[name] = err
				mu.Unlock()
			}
			return nil
		})
	}

	section("user", func() error {
		u, err := src.Profile(ctx)
		mu.Lock()
		page.User = u
		mu.Unlock()
		return err
	})
	section("objective", func() error {
		o, err := src.Objective(ctx)
		if portfolio.IsNotFound(err) {
			return nil
		}
		mu.Lock()
		page.Objective = o
		mu.Unlock()
		return err
	})
	section(models.KindSkill.Plural(), list(ctx, &mu, src.Skills(), &page.Skills))
	section(models.KindProject.Plural(), list(ctx, &mu, src.Projects(), &page.Projects))
	section(models.KindCertificate.Plural(), list(ctx, &mu, src.Certificates(), &page.Certificates))
	section(models.KindCompetition.Plural(), list(ctx, &mu, src.Competitions(), &page.Competitions))
	section(models.KindExperience.Plural(), list(ctx, &mu, src.Experiences(), &page.Experiences))
	section(models.KindInternship.Plural(), list(ctx, &mu, src.Internships(), &page.Internships))

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return page, fmt.Errorf("load profile: %w", err)
	}
	return page, nil
}

type lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

func list[T any](ctx context.Context, mu *sync.Mutex, l lister[T], dst *[]T) func() error {
	return func() error {
		items, err := l.List(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		*dst = items
		mu.Unlock()
		return nil
	}
}
