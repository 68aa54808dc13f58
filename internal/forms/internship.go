package forms

import "github.com/garnizeh/portfolio/pkg/models"

type InternshipForm struct {
	Title            string `json:"title" validate:"required"`
	Company          string `json:"company" validate:"required"`
	Location         string `json:"location"`
	StartDate        string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate          string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Description      string `json:"description"`
	Responsibilities List   `json:"responsibilities"`
	Achievements     List   `json:"achievements"`
	Technologies     List   `json:"technologies"`
	Mentor           string `json:"mentor"`
	CompanyLogo      string `json:"companyLogo"`
	Certificate      string `json:"certificate"`
	Order            int    `json:"order"`
	IsActive         bool   `json:"isActive"`
}

type InternshipController = Controller[InternshipForm, models.Internship, models.InternshipInput]

func NewInternshipController(res Resource[models.Internship, models.InternshipInput], deps Deps, id string) *InternshipController {
	return newController(binding[InternshipForm, models.Internship, models.InternshipInput]{
		kind: models.KindInternship,
		build: func(f *InternshipForm) (models.InternshipInput, error) {
			start, err := parseDate(f.StartDate)
			if err != nil {
				return models.InternshipInput{}, err
			}
			end, err := parseDate(f.EndDate)
			if err != nil {
				return models.InternshipInput{}, err
			}
			return models.InternshipInput{
				Title:            f.Title,
				Company:          f.Company,
				Location:         f.Location,
				StartDate:        start,
				EndDate:          end,
				Description:      f.Description,
				Responsibilities: f.Responsibilities.Values(),
				Achievements:     f.Achievements.Values(),
				Technologies:     f.Technologies.Values(),
				Mentor:           f.Mentor,
				CompanyLogo:      f.CompanyLogo,
				Certificate:      f.Certificate,
				Order:            f.Order,
				IsActive:         f.IsActive,
			}, nil
		},
		fill: func(f *InternshipForm, e *models.Internship) {
			f.Title = e.Title
			f.Company = e.Company
			f.Location = e.Location
			f.StartDate = formatDate(e.StartDate)
			f.EndDate = formatDate(e.EndDate)
			f.Description = e.Description
			f.Responsibilities.Set(e.Responsibilities)
			f.Achievements.Set(e.Achievements)
			f.Technologies.Set(e.Technologies)
			f.Mentor = e.Mentor
			f.CompanyLogo = e.CompanyLogo
			f.Certificate = e.Certificate
			f.Order = e.Order
			f.IsActive = e.IsActive
		},
		entityID: func(e *models.Internship) string { return e.ID },
	}, res, deps, id, InternshipForm{IsActive: true})
}
