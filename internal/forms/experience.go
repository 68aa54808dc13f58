package forms

import "github.com/garnizeh/portfolio/pkg/models"

type ExperienceForm struct {
	Title            string `json:"title" validate:"required"`
	Company          string `json:"company" validate:"required"`
	Location         string `json:"location"`
	StartDate        string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate          string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	IsCurrent        bool   `json:"isCurrent"`
	Description      string `json:"description"`
	Responsibilities List   `json:"responsibilities"`
	Achievements     List   `json:"achievements"`
	Technologies     List   `json:"technologies"`
	CompanyLogo      string `json:"companyLogo"`
	Order            int    `json:"order"`
	IsActive         bool   `json:"isActive"`
}

type ExperienceController = Controller[ExperienceForm, models.Experience, models.ExperienceInput]

func NewExperienceController(res Resource[models.Experience, models.ExperienceInput], deps Deps, id string) *ExperienceController {
	return newController(binding[ExperienceForm, models.Experience, models.ExperienceInput]{
		kind: models.KindExperience,
		build: func(f *ExperienceForm) (models.ExperienceInput, error) {
			start, err := parseDate(f.StartDate)
			if err != nil {
				return models.ExperienceInput{}, err
			}
			// a current position has no end
			var end = f.EndDate
			if f.IsCurrent {
				end = ""
			}
			endDate, err := optionalDate(end)
			if err != nil {
				return models.ExperienceInput{}, err
			}
			return models.ExperienceInput{
				Title:            f.Title,
				Company:          f.Company,
				Location:         f.Location,
				StartDate:        start,
				EndDate:          endDate,
				IsCurrent:        f.IsCurrent,
				Description:      f.Description,
				Responsibilities: f.Responsibilities.Values(),
				Achievements:     f.Achievements.Values(),
				Technologies:     f.Technologies.Values(),
				CompanyLogo:      f.CompanyLogo,
				Order:            f.Order,
				IsActive:         f.IsActive,
			}, nil
		},
		fill: func(f *ExperienceForm, e *models.Experience) {
			f.Title = e.Title
			f.Company = e.Company
			f.Location = e.Location
			f.StartDate = formatDate(e.StartDate)
			f.EndDate = formatOptionalDate(e.EndDate)
			f.IsCurrent = e.IsCurrent
			f.Description = e.Description
			f.Responsibilities.Set(e.Responsibilities)
			f.Achievements.Set(e.Achievements)
			f.Technologies.Set(e.Technologies)
			f.CompanyLogo = e.CompanyLogo
			f.Order = e.Order
			f.IsActive = e.IsActive
		},
		entityID: func(e *models.Experience) string { return e.ID },
	}, res, deps, id, ExperienceForm{IsActive: true})
}
