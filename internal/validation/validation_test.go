package validation_test

import (
	"context"
	"testing"

	"github.com/garnizeh/portfolio/internal/validation"
	"github.com/garnizeh/portfolio/pkg/models"
)

func TestValidator(t *testing.T) {
	v, err := validation.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	cases := []struct {
		name    string
		kind    models.Kind
		body    string
		partial bool
		wantErr bool
	}{
		{name: "SkillValid", kind: models.KindSkill, body: `{"name":"Go","type":"Tools"}`},
		{name: "SkillBadType", kind: models.KindSkill, body: `{"name":"Go","type":"Cooking"}`, wantErr: true},
		{name: "SkillMissingName", kind: models.KindSkill, body: `{"type":"Tools"}`, wantErr: true},
		{name: "SkillPartialUpdate", kind: models.KindSkill, body: `{"name":"Rust"}`, partial: true},
		{name: "PartialStillChecksTypes", kind: models.KindSkill, body: `{"name":42}`, partial: true, wantErr: true},
		{name: "ObjectiveTooLong", kind: models.KindObjective, body: `{"bio":"` + longString(1001) + `"}`, wantErr: true},
		{name: "CompetitionTooManyPhotos", kind: models.KindCompetition, body: `{"title":"t","description":"d","date":"2024-01-01T00:00:00Z","photos":["1","2","3","4","5","6","7","8"]}`, wantErr: true},
		{name: "InternshipNeedsEndDate", kind: models.KindInternship, body: `{"title":"t","company":"c","startDate":"2024-01-01T00:00:00Z"}`, wantErr: true},
		{name: "ExperienceValid", kind: models.KindExperience, body: `{"title":"t","company":"c","startDate":"2024-01-01T00:00:00Z","technologies":["Go"],"isActive":true}`},
		{name: "UserValid", kind: models.KindUser, body: `{"firstName":"Ada","lastName":"L","role":"admin","socialLinks":{"github":"x"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs, err := v.Validate(context.Background(), tc.kind, []byte(tc.body), tc.partial)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if tc.wantErr && len(errs) == 0 {
				t.Fatalf("expected field errors")
			}
			if !tc.wantErr && len(errs) != 0 {
				t.Fatalf("unexpected field errors %#v", errs)
			}
		})
	}
}

func TestValidator_UnknownKind(t *testing.T) {
	v, err := validation.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := v.Validate(context.Background(), models.Kind("widget"), []byte(`{}`), false); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
