package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/menrva/internal/domain"
	"github.com/pkordes/menrva/internal/repo"
)

// listParams are the query parameters shared by GET /records and GET /search.
type listParams struct {
	Page    *int
	Limit   *int
	Type    *string
	License *string
	Access  *string
}

// bindRecordID binds the {id} path parameter the way generated strict
// servers do, so malformed UUIDs are rejected before any service call.
func bindRecordID(r *http.Request) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, fmt.Errorf("invalid format for parameter id: %w", err)
	}
	return id, nil
}

// bindListParams binds the optional form-style query parameters.
func bindListParams(r *http.Request) (listParams, error) {
	var p listParams
	q := r.URL.Query()

	for _, b := range []struct {
		name string
		dest any
	}{
		{"page", &p.Page},
		{"limit", &p.Limit},
		{"type", &p.Type},
		{"license", &p.License},
		{"access", &p.Access},
	} {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return listParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

// filter converts the bound parameters to a repo filter and pagination.
func (p listParams) filter() (repo.RecordFilter, domain.PaginationParams) {
	f := repo.RecordFilter{
		Type:    domain.RecordType(derefString(p.Type)),
		License: derefString(p.License),
		Access:  domain.AccessTier(derefString(p.Access)),
	}
	return f, domain.NewPaginationParams(p.Page, p.Limit)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
