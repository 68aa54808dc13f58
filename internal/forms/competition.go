package forms

import "github.com/garnizeh/portfolio/pkg/models"

type CompetitionForm struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description" validate:"required,max=1000"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Photos      List   `json:"photos"`
}

// CompetitionController is the competition form. Its main photo and gallery
// upload concurrently once the competition is saved.
type CompetitionController struct {
	*Controller[CompetitionForm, models.Competition, models.CompetitionInput]
	MainPhoto *Slot
	Gallery   *Gallery
}

func NewCompetitionController(res Resource[models.Competition, models.CompetitionInput], deps Deps, id string) *CompetitionController {
	cc := &CompetitionController{}
	cc.Controller = newController(binding[CompetitionForm, models.Competition, models.CompetitionInput]{
		kind: models.KindCompetition,
		build: func(f *CompetitionForm) (models.CompetitionInput, error) {
			date, err := parseDate(f.Date)
			if err != nil {
				return models.CompetitionInput{}, err
			}
			return models.CompetitionInput{
				Title:       f.Title,
				Description: f.Description,
				Date:        date,
				Photos:      f.Photos.Values(),
			}, nil
		},
		fill: func(f *CompetitionForm, e *models.Competition) {
			f.Title = e.Title
			f.Description = e.Description
			f.Date = formatDate(e.Date)
			f.Photos.Set(e.Photos)
			cc.MainPhoto.setExisting(imageURL(deps.Links, e.MainPhoto))
		},
		entityID: func(e *models.Competition) string { return e.ID },
	}, res, deps, id, CompetitionForm{Photos: NewList(MaxGallery)})

	cc.MainPhoto = cc.slot("mainPhoto")
	cc.Gallery = cc.gallery("gallery")
	cc.channels = func(id string) []Channel {
		path := models.KindCompetition.AdminPath()
		var out []Channel
		if f, ok := cc.MainPhoto.File(); ok {
			out = append(out, uploadOne(cc.deps, "upload-main-photo", f, path, id, "upload-main-photo"))
		}
		if files := cc.Gallery.Files(); len(files) > 0 {
			out = append(out, uploadMany(cc.deps, "upload-photos", files, path, id, "upload-photos"))
		}
		return out
	}
	return cc
}
