package models

type Counts struct {
	Users        int64 `json:"users"`
	Experiences  int64 `json:"experiences"`
	Internships  int64 `json:"internships"`
	Objectives   int64 `json:"objectives"`
	Projects     int64 `json:"projects"`
	Skills       int64 `json:"skills"`
	Certificates int64 `json:"certificates"`
	Competitions int64 `json:"competitions"`
}

// Of returns the count for a kind.
func (c Counts) Of(k Kind) int64 {
	switch k {
	case KindUser:
		return c.Users
	case KindObjective:
		return c.Objectives
	case KindSkill:
		return c.Skills
	case KindProject:
		return c.Projects
	case KindCertificate:
		return c.Certificates
	case KindCompetition:
		return c.Competitions
	case KindExperience:
		return c.Experiences
	case KindInternship:
		return c.Internships
	}
	return 0
}

// Set stores the count for a kind.
func (c *Counts) Set(k Kind, n int64) {
	switch k {
	case KindUser:
		c.Users = n
	case KindObjective:
		c.Objectives = n
	case KindSkill:
		c.Skills = n
	case KindProject:
		c.Projects = n
	case KindCertificate:
		c.Certificates = n
	case KindCompetition:
		c.Competitions = n
	case KindExperience:
		c.Experiences = n
	case KindInternship:
		c.Internships = n
	}
}

type Recent struct {
	Users        []User        `json:"users"`
	Experiences  []Experience  `json:"experiences"`
	Projects     []Project     `json:"projects"`
	Skills       []Skill       `json:"skills"`
	Certificates []Certificate `json:"certificates"`
	Competitions []Competition `json:"competitions"`
	Internships  []Internship  `json:"internships"`
}

// GroupCount is one bucket of a grouped statistic.
type GroupCount struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

type Statistics struct {
	Skills         []GroupCount `json:"skills"`
	ProjectsByType []GroupCount `json:"projectsByType"`
}

type Dashboard struct {
	Counts     Counts     `json:"counts"`
	Recent     Recent     `json:"recent"`
	Statistics Statistics `json:"statistics"`
}
