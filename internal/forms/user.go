package forms

import "github.com/garnizeh/portfolio/pkg/models"

type UserForm struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Role      string `json:"role" validate:"required,is-user-role"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
	GitHub    string `json:"github"`
}

// UserController is the user form with its single profile photo.
type UserController struct {
	*Controller[UserForm, models.User, models.UserInput]
	Photo *Slot
}

func NewUserController(res Resource[models.User, models.UserInput], deps Deps, id string) *UserController {
	uc := &UserController{}
	uc.Controller = newController(binding[UserForm, models.User, models.UserInput]{
		kind: models.KindUser,
		build: func(f *UserForm) (models.UserInput, error) {
			in := models.UserInput{FirstName: f.FirstName, LastName: f.LastName, Role: models.Role(f.Role)}
			if f.LinkedIn != "" || f.Instagram != "" || f.GitHub != "" {
				in.SocialLinks = &models.SocialLinks{LinkedIn: f.LinkedIn, Instagram: f.Instagram, GitHub: f.GitHub}
			}
			return in, nil
		},
		fill: func(f *UserForm, e *models.User) {
			f.FirstName = e.FirstName
			f.LastName = e.LastName
			f.Role = string(e.Role)
			f.LinkedIn = e.SocialLinks.LinkedIn
			f.Instagram = e.SocialLinks.Instagram
			f.GitHub = e.SocialLinks.GitHub
			uc.Photo.setExisting(imageURL(deps.Links, e.Photo))
		},
		entityID: func(e *models.User) string { return e.ID },
	}, res, deps, id, UserForm{Role: string(models.RoleUser)})

	uc.Photo = uc.slot("photo")
	uc.channels = func(id string) []Channel {
		f, ok := uc.Photo.File()
		if !ok {
			return nil
		}
		return []Channel{uploadOne(uc.deps, "upload-photo", f, models.KindUser.AdminPath(), id, "upload-photo")}
	}
	return uc
}
