// Package domain contains the core data types for the menRva records service.
// This package depends only on uuid and is imported by every other internal
// package (labels, repo, service, handler, view).
package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// RecordType distinguishes a deposit that is still being edited from one that
// has been made public.
type RecordType string

const (
	RecordTypeDraft     RecordType = "draft"
	RecordTypePublished RecordType = "published"
)

// Permission slug prefixes. The prefix of a permission slug encodes its
// access tier; a slug with neither prefix is private.
const (
	OpenPermissionPrefix       = "all_"
	RestrictedPermissionPrefix = "restricted_"
)

// AccessTier is the coarse access level derived from a permission slug.
type AccessTier string

const (
	AccessTierOpen       AccessTier = "open"
	AccessTierRestricted AccessTier = "restricted"
	AccessTierPrivate    AccessTier = "private"
)

// Valid reports whether t is one of the three known tiers.
func (t AccessTier) Valid() bool {
	switch t {
	case AccessTierOpen, AccessTierRestricted, AccessTierPrivate:
		return true
	}
	return false
}

// Permission slugs accepted by the deposit form.
const (
	PermissionAllView        = "all_view"
	PermissionRestrictedView = "restricted_view"
	PermissionPrivateView    = "private_view"
)

// Permissions returns the permission slugs a record may be deposited with,
// from most to least open.
func Permissions() []string {
	return []string{PermissionAllView, PermissionRestrictedView, PermissionPrivateView}
}

// Record is a deposited research object. Everything user-supplied lives in
// Metadata; ID and timestamps are assigned by the database.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Metadata is stored as a single jsonb document.
type Metadata struct {
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	Authors         []Author     `json:"authors"`
	License         string       `json:"license"`
	Permissions     string       `json:"permissions"`
	Type            RecordType   `json:"type"`
	Terms           []Term       `json:"terms,omitempty"`
	ResourceType    ResourceType `json:"resource_type"`
	PublicationDate *time.Time   `json:"publication_date,omitempty"`
}

// IsDraft reports whether the record can still be edited.
func (m Metadata) IsDraft() bool {
	return m.Type == RecordTypeDraft
}

// Author is a single creator of a record.
type Author struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
}

// FullName formats the author as "Last, First Middle" with each part
// title-cased. This is the only place author names are formatted.
func (a Author) FullName() string {
	name := titleCase(a.LastName) + ", " + titleCase(a.FirstName) + " " + titleCase(a.MiddleName)
	return strings.TrimSpace(name)
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		r, size := utf8.DecodeRuneInString(lower)
		words[i] = string(unicode.ToUpper(r)) + lower[size:]
	}
	return strings.Join(words, " ")
}

// Term is a controlled-vocabulary subject attached to a record.
// Source is the vocabulary slug ("MeSH", "FAST").
type Term struct {
	Source string `json:"source"`
	Value  string `json:"value"`
	ID     string `json:"id"`
}

// ResourceType is the two-level classification of a record,
// e.g. {General: "articles", Specific: "journal article"}.
type ResourceType struct {
	General  string `json:"general"`
	Specific string `json:"specific"`
}
