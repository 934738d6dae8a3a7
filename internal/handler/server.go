// Package handler implements the HTTP handlers for the menRva records API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (health.go, record.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/menrva/internal/domain"
	"github.com/pkordes/menrva/internal/forms"
	"github.com/pkordes/menrva/internal/repo"
	"github.com/pkordes/menrva/internal/view"
	"github.com/pkordes/menrva/spec"
)

// RecordServicer defines the business operations the record handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type RecordServicer interface {
	Create(ctx context.Context, md domain.Metadata) (domain.Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error)
	ListPaged(ctx context.Context, f repo.RecordFilter, p domain.PaginationParams) ([]domain.Record, int64, error)
	Update(ctx context.Context, id uuid.UUID, md domain.Metadata) (domain.Record, error)
	Publish(ctx context.Context, id uuid.UUID) (domain.Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PageRenderer writes the server-rendered HTML pages.
type PageRenderer interface {
	RenderRecord(w io.Writer, page view.RecordPage) error
	RenderSearch(w io.Writer, page view.SearchPage) error
}

// AddOnLister exposes the registered deposit-form add-ons.
type AddOnLister interface {
	List() []forms.AddOn
}

// Server holds the dependencies shared by every handler.
type Server struct {
	records   RecordServicer
	pages     PageRenderer
	addOns    AddOnLister
	publicURL string
	log       *slog.Logger
}

// Option configures optional Server fields.
type Option func(*Server)

// WithPublicURL sets the externally visible base URL used for copyable
// record links. Defaults to no prefix (relative links).
func WithPublicURL(u string) Option {
	return func(s *Server) { s.publicURL = u }
}

// WithLogger sets the logger used for unexpected errors. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer constructs the Server with all its dependencies.
// Any dependency may be nil when the routes that use it are not exercised.
func NewServer(records RecordServicer, pages PageRenderer, addOns AddOnLister, opts ...Option) *Server {
	s := &Server{records: records, pages: pages, addOns: addOns, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes registers every endpoint on a new chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/vocabularies", s.GetVocabularies)
	r.Get("/deposit/decorators", s.ListDecorators)
	r.Get("/search", s.GetSearchPage)

	r.Route("/records", func(r chi.Router) {
		r.Get("/", s.ListRecords)
		r.Post("/", s.CreateRecord)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetRecord)
			r.Put("/", s.UpdateRecord)
			r.Delete("/", s.DeleteRecord)
			r.Post("/publish", s.PublishRecord)
			r.Get("/view", s.GetRecordPage)
		})
	})

	return r
}

// GetOpenAPI handles GET /openapi.yaml by serving the embedded OpenAPI document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
