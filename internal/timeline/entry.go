package timeline

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Kind distinguishes work history from education.
type Kind string

const (
	KindWork      Kind = "work"
	KindEducation Kind = "education"
)

// Entry is one static item of the work/education history.
type Entry struct {
	Kind         Kind     `yaml:"type" json:"type" validate:"oneof=work education"`
	Start        Date     `yaml:"startDate" json:"startDate"`
	End          Date     `yaml:"endDate" json:"endDate"`
	Title        string   `yaml:"title" json:"title" validate:"required"`
	Organization string   `yaml:"organization" json:"organization" validate:"required"`
	URL          string   `yaml:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
	Description  string   `yaml:"description" json:"description"`
	Tags         []string `yaml:"tags" json:"tags" validate:"dive,required"`
	Logo         string   `yaml:"logo" json:"logo"`
	InvertLogo   bool     `yaml:"invertLogo,omitempty" json:"invertLogo,omitempty"`
}

var validate = validator.New()

// Validate checks field constraints and date ordering.
func (e Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("%w: %q is missing a start or end date", ErrInvalidEntry, e.Title)
	}
	if e.Start.Ongoing {
		return fmt.Errorf("%w: %q cannot start at %q", ErrInvalidEntry, e.Title, PresentLabel)
	}
	if e.Start.Compare(e.End) > 0 {
		return fmt.Errorf("%w: %q ends (%s) before it starts (%s)", ErrInvalidEntry, e.Title, e.End, e.Start)
	}
	return nil
}

func (e Entry) IsWork() bool { return e.Kind == KindWork }

// LogoIsImage reports whether Logo references an image rather than an inline glyph.
func (e Entry) LogoIsImage() bool {
	if e.Logo == "" {
		return false
	}
	if strings.Contains(e.Logo, "/") {
		return true
	}
	switch strings.ToLower(path.Ext(e.Logo)) {
	case ".png", ".jpg", ".jpeg", ".svg", ".ico", ".gif", ".webp":
		return true
	}
	return false
}

// Parse decodes a YAML (or JSON) sequence of entries and validates each one.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing timeline data: %w", err)
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return entries, nil
}

// LoadFile reads entries from a YAML or JSON file.
func LoadFile(filename string) ([]Entry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading timeline file: %w", err)
	}
	return Parse(data)
}

// SortByStartDesc returns a copy of entries, most recent start first.
// Entries with equal starts keep their input order.
func SortByStartDesc(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Compare(sorted[j].Start) > 0
	})
	return sorted
}
