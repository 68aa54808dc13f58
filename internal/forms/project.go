package forms

import "github.com/garnizeh/portfolio/pkg/models"

type ProjectForm struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=1000"`
	Skills      List   `json:"skills"`
	Links       string `json:"links"`
	GitHub      string `json:"github"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	ProjectType string `json:"projectType" validate:"required,is-project-type"`
}

type ProjectController = Controller[ProjectForm, models.Project, models.ProjectInput]

func NewProjectController(res Resource[models.Project, models.ProjectInput], deps Deps, id string) *ProjectController {
	return newController(binding[ProjectForm, models.Project, models.ProjectInput]{
		kind: models.KindProject,
		build: func(f *ProjectForm) (models.ProjectInput, error) {
			start, err := parseDate(f.StartDate)
			if err != nil {
				return models.ProjectInput{}, err
			}
			end, err := optionalDate(f.EndDate)
			if err != nil {
				return models.ProjectInput{}, err
			}
			return models.ProjectInput{
				Title:       f.Title,
				Description: f.Description,
				Skills:      f.Skills.Values(),
				Links:       f.Links,
				GitHub:      f.GitHub,
				StartDate:   start,
				EndDate:     end,
				ProjectType: models.ProjectType(f.ProjectType),
			}, nil
		},
		fill: func(f *ProjectForm, e *models.Project) {
			f.Title = e.Title
			f.Description = e.Description
			f.Skills.Set(e.Skills)
			f.Links = e.Links
			f.GitHub = e.GitHub
			f.StartDate = formatDate(e.StartDate)
			f.EndDate = formatOptionalDate(e.EndDate)
			f.ProjectType = string(e.ProjectType)
		},
		entityID: func(e *models.Project) string { return e.ID },
	}, res, deps, id, ProjectForm{ProjectType: string(models.ProjectSelfStudy)})
}
