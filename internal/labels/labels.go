// Package labels translates the slugs stored on records into the strings the
// UI shows: license names, subject categories, access tiers and the
// Bootstrap label class of a record badge.
//
// Every function is pure and total: unknown slugs are reported through the
// boolean return (or a fixed fallback), never through a panic.
package labels

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/pkordes/menrva/internal/domain"
)

// Bootstrap 3 label classes returned by RecordLabelClass.
const (
	ClassSuccess = "label-success"
	ClassWarning = "label-warning"
	ClassDanger  = "label-danger"
)

// Access tier display strings returned by AccessTierLabel.
const (
	AccessOpen       = "Open Access"
	AccessRestricted = "Restricted Access"
	AccessPrivate    = "Private Access"
)

// Entry is one row of a vocabulary table.
type Entry struct {
	Slug string `json:"slug" yaml:"slug"`
	Name string `json:"name" yaml:"name"`
}

// licenses keeps the deposit form's option order.
var licenses = []Entry{
	{"mit-license", "MIT License"},
	{"cc-by", "Creative Commons Attribution"},
	{"cc-by-sa", "Creative Commons Attribution Share-Alike"},
	{"cc-zero", "Creative Commons CCZero"},
	{"cc-nc", "Creative Commons Non-Commercial (Any)"},
	{"gpl-3.0", "GNU General Public License version 3.0 (GPLv3)"},
	{"other-open", "Other (Open)"},
	{"other-closed", "Other (Not Open)"},
}

var subjectSources = []Entry{
	{"MeSH", "Medical"},
	{"FAST", "Topical"},
}

var (
	licenseNames       = index(licenses)
	subjectSourceNames = index(subjectSources)
)

func index(entries []Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Slug] = e.Name
	}
	return m
}

// Licenses returns a copy of the license table in display order.
func Licenses() []Entry {
	return append([]Entry(nil), licenses...)
}

// SubjectSources returns a copy of the subject-source table in display order.
func SubjectSources() []Entry {
	return append([]Entry(nil), subjectSources...)
}

// Ununderscore replaces the first underscore of v's string form with a space.
// Only the first one: "a_b_c" becomes "a b_c". Pointers are followed, so
// a *string formats as its target.
// Falsy values (nil, "", numeric zero, NaN, false, nil pointers) yield "".
func Ununderscore(v any) string {
	rv, ok := deref(v)
	if !ok || isFalsy(rv) {
		return ""
	}
	return strings.Replace(fmt.Sprint(rv.Interface()), "_", " ", 1)
}

// deref follows pointers and interfaces down to a concrete value.
// It reports false for nil or a nil pointer anywhere along the way.
func deref(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

// isFalsy reports whether rv is the zero value of a scalar kind or NaN.
// Structs, slices and maps are never falsy, matching how templates treat them.
func isFalsy(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.IsZero() || math.IsNaN(rv.Float())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.String:
		return rv.IsZero()
	}
	return false
}

// LicenseName returns the human readable name of a license slug.
// The boolean is false when the slug is not in the license table.
func LicenseName(slug string) (string, bool) {
	name, ok := licenseNames[slug]
	return name, ok
}

// SubjectCategoryName returns the category name of a subject source slug,
// e.g. "MeSH" is "Medical". The boolean is false for unknown sources.
func SubjectCategoryName(slug string) (string, bool) {
	name, ok := subjectSourceNames[slug]
	return name, ok
}

// AccessTierLabel classifies a permission slug by prefix.
func AccessTierLabel(slug string) string {
	switch {
	case strings.HasPrefix(slug, domain.OpenPermissionPrefix):
		return AccessOpen
	case strings.HasPrefix(slug, domain.RestrictedPermissionPrefix):
		return AccessRestricted
	default:
		return AccessPrivate
	}
}

// RecordLabelClass returns the badge class for a record. Drafts are always
// danger; published records are coloured by access tier.
func RecordLabelClass(r domain.Record) string {
	if r.Metadata.Type != domain.RecordTypeDraft {
		switch {
		case strings.HasPrefix(r.Metadata.Permissions, domain.OpenPermissionPrefix):
			return ClassSuccess
		case strings.HasPrefix(r.Metadata.Permissions, domain.RestrictedPermissionPrefix):
			return ClassWarning
		}
	}
	return ClassDanger
}
