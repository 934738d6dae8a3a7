package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/menrva/internal/domain"
	"github.com/pkordes/menrva/internal/labels"
)

// MetadataRequest is the body of POST /records and PUT /records/{id}.
// The record type is not accepted: it is driven by the publish action.
type MetadataRequest struct {
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Authors         []domain.Author     `json:"authors"`
	License         string              `json:"license"`
	Permissions     string              `json:"permissions"`
	Terms           []domain.Term       `json:"terms,omitempty"`
	ResourceType    domain.ResourceType `json:"resource_type"`
	PublicationDate *openapi_types.Date `json:"publication_date,omitempty"`
}

// RecordResponse is the JSON representation of a record. Display holds the
// strings the UI shows, resolved from the stored slugs.
type RecordResponse struct {
	ID        uuid.UUID        `json:"id"`
	Metadata  MetadataResponse `json:"metadata"`
	Display   DisplayResponse  `json:"display"`
	Links     LinksResponse    `json:"links"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// MetadataResponse mirrors MetadataRequest plus the record type.
type MetadataResponse struct {
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Authors         []AuthorResponse    `json:"authors"`
	License         string              `json:"license"`
	Permissions     string              `json:"permissions"`
	Type            domain.RecordType   `json:"type"`
	Terms           []domain.Term       `json:"terms"`
	ResourceType    domain.ResourceType `json:"resource_type"`
	PublicationDate *openapi_types.Date `json:"publication_date,omitempty"`
}

// AuthorResponse adds the formatted full name to an author.
type AuthorResponse struct {
	domain.Author
	FullName string `json:"full_name"`
}

// DisplayResponse carries the resolved labels. LicenseName is null when the
// stored slug is not in the license vocabulary.
type DisplayResponse struct {
	LicenseName      *string           `json:"license_name"`
	AccessLabel      string            `json:"access_label"`
	PermissionsLabel string            `json:"permissions_label"`
	LabelClass       string            `json:"label_class"`
	Status           string            `json:"status"`
	Subjects         []SubjectResponse `json:"subjects"`
}

// SubjectResponse is a term with its category name; Category is null for
// unknown sources.
type SubjectResponse struct {
	Category *string `json:"category"`
	Source   string  `json:"source"`
	Value    string  `json:"value"`
}

// LinksResponse points at the JSON and HTML views of a record.
type LinksResponse struct {
	Self string `json:"self"`
	HTML string `json:"html"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// RecordListResponse is the body of GET /records.
type RecordListResponse struct {
	Data       []RecordResponse `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// CreateRecord handles POST /records.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	md, ok := s.decodeMetadata(w, r)
	if !ok {
		return
	}

	created, err := s.records.Create(r.Context(), md)
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}
	w.Header().Set("Location", recordPath(created.ID))
	writeJSON(w, http.StatusCreated, s.recordToResponse(created))
}

// ListRecords handles GET /records.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and the
// ?type=, ?license= and ?access= filters.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
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

	data := make([]RecordResponse, len(records))
	for i, rec := range records {
		data[i] = s.recordToResponse(rec)
	}
	writeJSON(w, http.StatusOK, RecordListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: int(total),
		},
	})
}

// GetRecord handles GET /records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, s.recordToResponse(rec))
}

// UpdateRecord handles PUT /records/{id}. Only drafts can be updated.
func (s *Server) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := bindRecordID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	md, ok := s.decodeMetadata(w, r)
	if !ok {
		return
	}

	updated, err := s.records.Update(r.Context(), id, md)
	if err != nil {
		s.serviceError(w, r, err, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, s.recordToResponse(updated))
}

// PublishRecord handles POST /records/{id}/publish.
func (s *Server) PublishRecord(w http.ResponseWriter, r *http.Request) {
	id, err := bindRecordID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	published, err := s.records.Publish(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, s.recordToResponse(published))
}

// DeleteRecord handles DELETE /records/{id}. Only drafts can be deleted.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := bindRecordID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.records.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, err, "record not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// decodeMetadata reads a MetadataRequest body, rejecting unknown fields.
// It writes the error response itself and reports whether decoding succeeded.
func (s *Server) decodeMetadata(w http.ResponseWriter, r *http.Request) (domain.Metadata, bool) {
	var body MetadataRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "request body too large")
			return domain.Metadata{}, false
		}
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return domain.Metadata{}, false
	}
	return requestToMetadata(body), true
}

func requestToMetadata(body MetadataRequest) domain.Metadata {
	md := domain.Metadata{
		Title:        body.Title,
		Description:  body.Description,
		Authors:      body.Authors,
		License:      body.License,
		Permissions:  body.Permissions,
		Terms:        body.Terms,
		ResourceType: body.ResourceType,
	}
	if body.PublicationDate != nil {
		pd := body.PublicationDate.Time
		md.PublicationDate = &pd
	}
	return md
}

// recordToResponse converts a domain.Record into its API representation,
// resolving every slug through package labels.
func (s *Server) recordToResponse(rec domain.Record) RecordResponse {
	md := rec.Metadata

	authors := make([]AuthorResponse, len(md.Authors))
	for i, a := range md.Authors {
		authors[i] = AuthorResponse{Author: a, FullName: a.FullName()}
	}

	terms := md.Terms
	if terms == nil {
		terms = []domain.Term{}
	}
	subjects := make([]SubjectResponse, len(terms))
	for i, t := range terms {
		subjects[i] = SubjectResponse{Category: lookupPtr(labels.SubjectCategoryName, t.Source), Source: t.Source, Value: t.Value}
	}

	resp := RecordResponse{
		ID: rec.ID,
		Metadata: MetadataResponse{
			Title:        md.Title,
			Description:  md.Description,
			Authors:      authors,
			License:      md.License,
			Permissions:  md.Permissions,
			Type:         md.Type,
			Terms:        terms,
			ResourceType: md.ResourceType,
		},
		Display: DisplayResponse{
			LicenseName:      lookupPtr(labels.LicenseName, md.License),
			AccessLabel:      labels.AccessTierLabel(md.Permissions),
			PermissionsLabel: labels.Ununderscore(md.Permissions),
			LabelClass:       labels.RecordLabelClass(rec),
			Status:           labels.Ununderscore(string(md.Type)),
			Subjects:         subjects,
		},
		Links: LinksResponse{
			Self: s.publicURL + recordPath(rec.ID),
			HTML: s.publicURL + recordPath(rec.ID) + "/view",
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if md.PublicationDate != nil {
		resp.Metadata.PublicationDate = &openapi_types.Date{Time: *md.PublicationDate}
	}
	return resp
}

// lookupPtr turns a (name, ok) lookup into a nullable JSON string.
func lookupPtr(lookup func(string) (string, bool), slug string) *string {
	name, ok := lookup(slug)
	if !ok {
		return nil
	}
	return &name
}

func recordPath(id uuid.UUID) string {
	return "/records/" + id.String()
}
