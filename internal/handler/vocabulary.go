package handler

import (
	"net/http"

	"github.com/pkordes/menrva/internal/labels"
)

// GetVocabularies handles GET /vocabularies. The deposit form builds its
// select options from this instead of hard-coding the tables.
func (s *Server) GetVocabularies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, labels.Vocabularies())
}
