package handler

import (
	"bytes"
	"net/http"

	"github.com/pkordes/menrva/internal/view"
)

// GetRecordPage handles GET /records/{id}/view, the HTML detail page.
func (s *Server) GetRecordPage(w http.ResponseWriter, r *http.Request) {
	id, err := bindRecordID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rec, err := s.records.GetByID(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err, "record not found")
		return
	}

	s.writePage(w, r, func(buf *bytes.Buffer) error {
		return s.pages.RenderRecord(buf, view.RecordPage{
			Record:   rec,
			URL:      s.publicURL + recordPath(rec.ID),
			Subjects: view.GroupSubjects(rec.Metadata.Terms),
		})
	})
}

// GetSearchPage handles GET /search, the HTML results list.
// It accepts the same query parameters as GET /records.
func (s *Server) GetSearchPage(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	f, page := params.filter()

	records, total, err := s.records.ListPaged(r.Context(), f, page)
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}

	s.writePage(w, r, func(buf *bytes.Buffer) error {
		return s.pages.RenderSearch(buf, view.SearchPage{Records: records, Page: page.Page, Total: int(total)})
	})
}

// writePage renders into a buffer first so a template failure becomes a
// clean 500 instead of a truncated 200.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.serviceError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
