package labels

import (
	"html/template"

	"github.com/pkordes/menrva/internal/domain"
)

// FuncMap exposes the resolver to html/template under the filter names the
// search UI uses, e.g. {{ .Metadata.License | to_license_name }}.
// Lookups that miss render as the empty string.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"ununderscore":     Ununderscore,
		"to_license_name":  orEmpty(LicenseName),
		"to_subjects_name": orEmpty(SubjectCategoryName),
		"to_access_name":   AccessTierLabel,
		"to_label_css":     labelCSS,
	}
}

func orEmpty(lookup func(string) (string, bool)) func(string) string {
	return func(slug string) string {
		name, _ := lookup(slug)
		return name
	}
}

// labelCSS accepts both values and pointers so templates can pipe either.
func labelCSS(r any) string {
	switch v := r.(type) {
	case domain.Record:
		return RecordLabelClass(v)
	case *domain.Record:
		if v == nil {
			return ClassDanger
		}
		return RecordLabelClass(*v)
	}
	return ClassDanger
}
