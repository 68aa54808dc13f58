package forms

import (
	"context"

	"github.com/garnizeh/portfolio/pkg/models"
)

type ObjectiveForm struct {
	Bio string `json:"bio" validate:"required,max=1000"`
}

type ObjectiveController = Controller[ObjectiveForm, models.Objective, models.ObjectiveInput]

// NewObjectiveController builds the objective form. In create mode it starts
// from the current objective when existing is not nil.
func NewObjectiveController(res Resource[models.Objective, models.ObjectiveInput], existing func(ctx context.Context) (*models.Objective, error), deps Deps, id string) *ObjectiveController {
	return newController(binding[ObjectiveForm, models.Objective, models.ObjectiveInput]{
		kind: models.KindObjective,
		build: func(f *ObjectiveForm) (models.ObjectiveInput, error) {
			return models.ObjectiveInput{Bio: f.Bio}, nil
		},
		fill: func(f *ObjectiveForm, e *models.Objective) {
			f.Bio = e.Bio
		},
		entityID: func(e *models.Objective) string { return e.ID },
		preload:  existing,
	}, res, deps, id, ObjectiveForm{})
}
