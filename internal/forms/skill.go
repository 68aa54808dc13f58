package forms

import "github.com/garnizeh/portfolio/pkg/models"

type SkillForm struct {
	Name string `json:"name" validate:"required,max=50"`
	Type string `json:"type" validate:"required,is-skill-type"`
}

type SkillController = Controller[SkillForm, models.Skill, models.SkillInput]

func NewSkillController(res Resource[models.Skill, models.SkillInput], deps Deps, id string) *SkillController {
	return newController(binding[SkillForm, models.Skill, models.SkillInput]{
		kind: models.KindSkill,
		build: func(f *SkillForm) (models.SkillInput, error) {
			return models.SkillInput{Name: f.Name, Type: models.SkillType(f.Type)}, nil
		},
		fill: func(f *SkillForm, e *models.Skill) {
			f.Name = e.Name
			f.Type = string(e.Type)
		},
		entityID: func(e *models.Skill) string { return e.ID },
	}, res, deps, id, SkillForm{Type: string(models.SkillProgrammingLanguages)})
}
