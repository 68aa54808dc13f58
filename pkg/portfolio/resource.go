package portfolio

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/garnizeh/portfolio/pkg/models"
)

// Resource is the CRUD surface of one entity collection. T is the stored
// record and In the write record sent on create and update.
type Resource[T, In any] struct {
	c    *Client
	kind models.Kind
}

func NewResource[T, In any](c *Client, kind models.Kind) *Resource[T, In] {
	return &Resource[T, In]{c: c, kind: kind}
}

func (r *Resource[T, In]) Kind() models.Kind { return r.kind }

// List returns the public listing of the collection.
func (r *Resource[T, In]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.doKeyed(ctx, http.MethodGet, r.c.apiURL(r.kind.PublicPath()), nil, r.kind.Plural(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T, In]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.doKeyed(ctx, http.MethodGet, r.c.AdminURL(r.kind.AdminPath(), id), nil, r.kind.Key(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var out T
	if err := r.c.doKeyed(ctx, http.MethodPost, r.c.AdminURL(r.kind.AdminPath()), in, r.kind.Key(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial update; fields absent from in are left untouched by the server.
func (r *Resource[T, In]) Update(ctx context.Context, id string, in In) (*T, error) {
	var out T
	if err := r.c.doKeyed(ctx, http.MethodPut, r.c.AdminURL(r.kind.AdminPath(), id), in, r.kind.Key(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, In]) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, r.kind, id)
}

// Delete removes a record of any kind.
func (c *Client) Delete(ctx context.Context, kind models.Kind, id string) error {
	return c.do(ctx, http.MethodDelete, c.AdminURL(kind.AdminPath(), id), nil, nil)
}

func (c *Client) Users() *Resource[models.User, models.UserInput] {
	return NewResource[models.User, models.UserInput](c, models.KindUser)
}

func (c *Client) Objectives() *Resource[models.Objective, models.ObjectiveInput] {
	return NewResource[models.Objective, models.ObjectiveInput](c, models.KindObjective)
}

func (c *Client) Skills() *Resource[models.Skill, models.SkillInput] {
	return NewResource[models.Skill, models.SkillInput](c, models.KindSkill)
}

func (c *Client) Projects() *Resource[models.Project, models.ProjectInput] {
	return NewResource[models.Project, models.ProjectInput](c, models.KindProject)
}

func (c *Client) Certificates() *Resource[models.Certificate, models.CertificateInput] {
	return NewResource[models.Certificate, models.CertificateInput](c, models.KindCertificate)
}

func (c *Client) Competitions() *Resource[models.Competition, models.CompetitionInput] {
	return NewResource[models.Competition, models.CompetitionInput](c, models.KindCompetition)
}

func (c *Client) Experiences() *Resource[models.Experience, models.ExperienceInput] {
	return NewResource[models.Experience, models.ExperienceInput](c, models.KindExperience)
}

func (c *Client) Internships() *Resource[models.Internship, models.InternshipInput] {
	return NewResource[models.Internship, models.InternshipInput](c, models.KindInternship)
}

// Profile returns the public owner profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doKeyed(ctx, http.MethodGet, c.apiURL("user", "profile"), nil, "user", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ProfileByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := c.doKeyed(ctx, http.MethodGet, c.apiURL("user", "profile", id), nil, "user", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers pages through users. Zero values leave the server defaults in place.
func (c *Client) ListUsers(ctx context.Context, q models.UserQuery) (*models.UserPage, error) {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Role != "" {
		v.Set("role", string(q.Role))
	}
	u := c.apiURL("user", "list")
	if len(v) > 0 {
		u += "?" + v.Encode()
	}

	var page models.UserPage
	if err := c.do(ctx, http.MethodGet, u, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Objective returns the singleton objective.
func (c *Client) Objective(ctx context.Context) (*models.Objective, error) {
	var o models.Objective
	if err := c.doKeyed(ctx, http.MethodGet, c.apiURL("objective"), nil, models.KindObjective.Key(), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	if err := c.do(ctx, http.MethodGet, c.AdminURL("dashboard"), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
