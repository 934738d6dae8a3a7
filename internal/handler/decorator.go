package handler

import (
	"net/http"

	"github.com/pkordes/menrva/internal/forms"
)

// ListDecorators handles GET /deposit/decorators.
// The deposit form fetches this at boot to register its add-on templates.
func (s *Server) ListDecorators(w http.ResponseWriter, _ *http.Request) {
	addOns := []forms.AddOn{}
	if s.addOns != nil {
		addOns = append(addOns, s.addOns.List()...)
	}
	writeJSON(w, http.StatusOK, addOns)
}
