package labels

import "github.com/pkordes/menrva/internal/domain"

// Permission is a deposit permission slug with both of its display forms.
type Permission struct {
	Slug        string `json:"slug" yaml:"slug"`
	Label       string `json:"label" yaml:"label"`
	AccessLabel string `json:"access_label" yaml:"access_label"`
}

// Vocabulary is every controlled vocabulary the deposit form offers, with
// the labels the UI shows for each entry.
type Vocabulary struct {
	Licenses       []Entry      `json:"licenses" yaml:"licenses"`
	SubjectSources []Entry      `json:"subject_sources" yaml:"subject_sources"`
	Permissions    []Permission `json:"permissions" yaml:"permissions"`
}

// Vocabularies assembles a fresh Vocabulary; callers may modify the result.
func Vocabularies() Vocabulary {
	perms := domain.Permissions()
	entries := make([]Permission, len(perms))
	for i, p := range perms {
		entries[i] = Permission{
			Slug:        p,
			Label:       Ununderscore(p),
			AccessLabel: AccessTierLabel(p),
		}
	}
	return Vocabulary{
		Licenses:       Licenses(),
		SubjectSources: SubjectSources(),
		Permissions:    entries,
	}
}
