package domain

import "slices"

// resourceTypes maps each general resource type to the specific types that
// may be deposited under it. It mirrors the options of the deposit form.
var resourceTypes = map[string][]string{
	"dataset": {"dataset"},
	"articles": {
		"book review", "data paper", "editorial", "journal article",
		"newspaper article", "research paper", "retraction of publication",
		"review article", "software paper",
	},
	"conference objects": {
		"conference abstract", "conference paper", "conference poster",
		"conference presentation", "conference proceeding", "congress",
	},
	"images": {
		"architectural drawing", "chart", "drawing", "map", "photograph",
		"pictorial work", "portrait",
	},
	"multimedia": {
		"animation", "audio recording", "database", "postcard", "social media",
		"software/source code", "video recording", "website",
	},
	"periodicals": {"journal", "magazine", "newsletter", "newspaper"},
	"books": {
		"account book", "almanac", "atlas", "biography", "book", "catalog",
		"diary", "handbook", "book part",
	},
	"study documentation": {
		"case report", "clinical study", "clinical trial", "comparative study",
		"data management plan", "evaluation study", "measure", "protocol",
		"research proposal", "statistics",
	},
	"theses and dissertations": {
		"academic dissertations", "bachelor thesis", "masters thesis", "doctoral thesis",
	},
	"text resources": {
		"abstract", "advertisement", "bibliography", "biobibliography", "comment",
		"correspondence", "fictional work", "form", "guideline", "letter",
		"manuscript", "patent", "patient education handout", "personal narrative",
		"poetry", "preprint", "program", "resource guide", "software documentation",
		"speech", "technical documentation", "working paper",
	},
	"learning objects": {
		"examination questions", "lecture", "lecture notes", "lesson plans",
		"presentation", "problems and exercises", "syllabus",
	},
	"archival items": {"collection", "ephemera", "exhibitions"},
	"other": {
		"annual report", "interview", "laboratory manual", "table",
		"technical report", "other",
	},
}

// Valid reports whether the general/specific pair is a known resource type.
func (rt ResourceType) Valid() bool {
	return slices.Contains(resourceTypes[rt.General], rt.Specific)
}
