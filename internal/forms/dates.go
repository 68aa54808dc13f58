package forms

import "time"

// DateLayout is the layout of date inputs.
const DateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// optionalDate maps a blank input to an absent date.
func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func imageURL(links Links, filename string) string {
	if links == nil || filename == "" {
		return ""
	}
	return links.ImageURL(filename)
}
