package models

import "time"

// Write records sent on create and update. Optional fields are omitted from
// the JSON body when empty; photo fields are owned by the upload endpoints.

type UserInput struct {
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Role        Role         `json:"role"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty"`
}

type ObjectiveInput struct {
	Bio string `json:"bio"`
}

type SkillInput struct {
	Name string    `json:"name"`
	Type SkillType `json:"type"`
}

type ProjectInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Skills      []string    `json:"skills"`
	Links       string      `json:"links,omitempty"`
	GitHub      string      `json:"github,omitempty"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	ProjectType ProjectType `json:"projectType"`
}

type CertificateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CompetitionInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Photos      []string  `json:"photos,omitempty"`
}

type ExperienceInput struct {
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location,omitempty"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	IsCurrent        bool       `json:"isCurrent"`
	Description      string     `json:"description,omitempty"`
	Responsibilities []string   `json:"responsibilities"`
	Achievements     []string   `json:"achievements"`
	Technologies     []string   `json:"technologies"`
	CompanyLogo      string     `json:"companyLogo,omitempty"`
	Order            int        `json:"order"`
	IsActive         bool       `json:"isActive"`
}

type InternshipInput struct {
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location,omitempty"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Description      string    `json:"description,omitempty"`
	Responsibilities []string  `json:"responsibilities"`
	Achievements     []string  `json:"achievements"`
	Technologies     []string  `json:"technologies"`
	Mentor           string    `json:"mentor,omitempty"`
	CompanyLogo      string    `json:"companyLogo,omitempty"`
	Certificate      string    `json:"certificate,omitempty"`
	Order            int       `json:"order"`
	IsActive         bool      `json:"isActive"`
}
