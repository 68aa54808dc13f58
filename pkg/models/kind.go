package models

import (
	"fmt"
	"strings"
)

// Kind names one of the portfolio entity collections.
type Kind string

const (
	KindUser        Kind = "user"
	KindObjective   Kind = "objective"
	KindSkill       Kind = "skill"
	KindProject     Kind = "project"
	KindCertificate Kind = "certificate"
	KindCompetition Kind = "competition"
	KindExperience  Kind = "experience"
	KindInternship  Kind = "internship"
)

var Kinds = []Kind{
	KindUser, KindObjective, KindSkill, KindProject,
	KindCertificate, KindCompetition, KindExperience, KindInternship,
}

// ParseKind accepts the singular or plural collection name.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if s == string(k) || s == k.Plural() {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

func (k Kind) Valid() bool {
	for _, v := range Kinds {
		if k == v {
			return true
		}
	}
	return false
}

// Key is the envelope key wrapping a single record.
func (k Kind) Key() string { return string(k) }

// Plural is the envelope key wrapping a list of records.
func (k Kind) Plural() string { return string(k) + "s" }

// AdminPath is the admin collection segment; the objective collection is singular there.
func (k Kind) AdminPath() string {
	if k == KindObjective {
		return string(k)
	}
	return k.Plural()
}

// PublicPath is the public read segment.
func (k Kind) PublicPath() string {
	if k == KindUser {
		return "user/list"
	}
	return string(k)
}

// Title is the capitalized label used in user-facing messages.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
