package models

import "time"

// Entity records as the API renders them. Each is stored as one JSON document
// in the entities table, keyed by kind.

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type SkillType string

const (
	SkillProgrammingLanguages SkillType = "Programming Languages"
	SkillWebDevelopment       SkillType = "Web Development"
	SkillDataScience          SkillType = "Data Science & ML"
	SkillTools                SkillType = "Tools"
)

var SkillTypes = []SkillType{SkillProgrammingLanguages, SkillWebDevelopment, SkillDataScience, SkillTools}

type ProjectType string

const (
	ProjectCompany    ProjectType = "company project"
	ProjectUniversity ProjectType = "university project"
	ProjectFreelance  ProjectType = "freelance project"
	ProjectInternship ProjectType = "internship project"
	ProjectSelfStudy  ProjectType = "self study"
)

var ProjectTypes = []ProjectType{ProjectCompany, ProjectUniversity, ProjectFreelance, ProjectInternship, ProjectSelfStudy}

type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	GitHub    string `json:"github,omitempty"`
}

type User struct {
	ID          string      `json:"_id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Photo       string      `json:"photo,omitempty"`
	Role        Role        `json:"role"`
	SocialLinks SocialLinks `json:"socialLinks"`
	FullName    string      `json:"fullName,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.FirstName + " " + u.LastName
}

type Objective struct {
	ID        string    `json:"_id"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o Objective) DisplayName() string { return "objective" }

type Skill struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Type      SkillType `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Skill) DisplayName() string { return s.Name }

type Project struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Skills      []string    `json:"skills"`
	Links       string      `json:"links,omitempty"`
	GitHub      string      `json:"github,omitempty"`
	StartDate   time.Time   `json:"startDate"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	ProjectType ProjectType `json:"projectType"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (p Project) DisplayName() string { return p.Title }

type Certificate struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Photo       string    `json:"photo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c Certificate) DisplayName() string { return c.Title }

type Competition struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	MainPhoto   string    `json:"mainPhoto"`
	Date        time.Time `json:"date"`
	Photos      []string  `json:"photos,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c Competition) DisplayName() string { return c.Title }

type Experience struct {
	ID               string     `json:"_id"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	IsCurrent        bool       `json:"isCurrent"`
	Description      string     `json:"description"`
	Responsibilities []string   `json:"responsibilities"`
	Achievements     []string   `json:"achievements"`
	Technologies     []string   `json:"technologies"`
	CompanyLogo      string     `json:"companyLogo,omitempty"`
	Order            int        `json:"order"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (e Experience) DisplayName() string { return e.Title }

type Internship struct {
	ID               string    `json:"_id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Description      string    `json:"description"`
	Responsibilities []string  `json:"responsibilities"`
	Achievements     []string  `json:"achievements"`
	Technologies     []string  `json:"technologies"`
	Mentor           string    `json:"mentor"`
	CompanyLogo      string    `json:"companyLogo,omitempty"`
	Certificate      string    `json:"certificate,omitempty"`
	Order            int       `json:"order"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (i Internship) DisplayName() string { return i.Title }
