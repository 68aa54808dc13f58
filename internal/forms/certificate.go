package forms

import "github.com/garnizeh/portfolio/pkg/models"

type CertificateForm struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

// CertificateController is the certificate form with its single photo.
type CertificateController struct {
	*Controller[CertificateForm, models.Certificate, models.CertificateInput]
	Photo *Slot
}

func NewCertificateController(res Resource[models.Certificate, models.CertificateInput], deps Deps, id string) *CertificateController {
	cc := &CertificateController{}
	cc.Controller = newController(binding[CertificateForm, models.Certificate, models.CertificateInput]{
		kind: models.KindCertificate,
		build: func(f *CertificateForm) (models.CertificateInput, error) {
			return models.CertificateInput{Title: f.Title, Description: f.Description}, nil
		},
		fill: func(f *CertificateForm, e *models.Certificate) {
			f.Title = e.Title
			f.Description = e.Description
			cc.Photo.setExisting(imageURL(deps.Links, e.Photo))
		},
		entityID: func(e *models.Certificate) string { return e.ID },
	}, res, deps, id, CertificateForm{})

	cc.Photo = cc.slot("photo")
	cc.channels = func(id string) []Channel {
		f, ok := cc.Photo.File()
		if !ok {
			return nil
		}
		return []Channel{uploadOne(cc.deps, "upload-photo", f, models.KindCertificate.AdminPath(), id, "upload-photo")}
	}
	return cc
}
