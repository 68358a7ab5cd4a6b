package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/session"
	"github.com/brndagencynl/HETT-sub001/internal/shipping"
	"github.com/brndagencynl/HETT-sub001/internal/storage"
)

// VariantPricer fetches the injected base price for a standard-size variant.
type VariantPricer interface {
	VariantPrice(ctx context.Context, handle string) (money.Cents, error)
}

// OfferStore is the subset of the Postgres storage the handlers need.
type OfferStore interface {
	SaveOffer(ctx context.Context, offer storage.Offer) (int64, error)
	GetOffer(ctx context.Context, offerID int64) (*storage.Offer, error)
	FindOfferByFingerprint(ctx context.Context, fingerprint string) (*storage.Offer, error)
	ListOffers(ctx context.Context) ([]storage.Offer, error)
	UpdateOfferStatus(ctx context.Context, offerID int64, status string) error
	ExportOfferToExcel(ctx context.Context, offer storage.Offer) (string, error)
	ExportAllOffersToExcel(ctx context.Context, filename string) (string, error)
}

// Notifier receives submitted offers for the back office.
type Notifier interface {
	OfferSubmitted(offer storage.Offer, excelPath string)
}

type Server struct {
	catalog  *catalog.Catalog
	sessions *session.Store
	offers   OfferStore
	commerce VariantPricer
	shipping *shipping.Checker
	notifier Notifier
	logger   *zap.Logger
}

func New(
	cat *catalog.Catalog,
	sessions *session.Store,
	offers OfferStore,
	commerce VariantPricer,
	shippingChecker *shipping.Checker,
	notifier Notifier,
	logger *zap.Logger,
) *Server {
	return &Server{
		catalog:  cat,
		sessions: sessions,
		offers:   offers,
		commerce: commerce,
		shipping: shippingChecker,
		notifier: notifier,
		logger:   logger,
	}
}

// Router wires up the HTTP API consumed by the wizard frontend.
func (s *Server) Router(requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Route("/quote", func(r chi.Router) {
			r.Post("/price", s.handlePrice)
			r.Post("/validate", s.handleValidate)
			r.Post("/layers", s.handleLayers)
		})

		r.Route("/cart/lines", func(r chi.Router) {
			r.Post("/", s.handleCreateCartLine)
			r.Get("/{id}", s.handleGetCartLine)
		})

		r.Route("/session/{sessionID}", func(r chi.Router) {
			r.Get("/configuration", s.handleGetSession)
			r.Put("/configuration", s.handleSaveSession)
			r.Delete("/configuration", s.handleClearSession)
		})

		r.Post("/shipping/check", s.handleShippingCheck)

		// Back-office surface: listing, status workflow and xlsx reporting.
		r.Route("/admin/offers", func(r chi.Router) {
			r.Get("/", s.handleListOffers)
			r.Post("/export", s.handleExportOffers)
			r.Patch("/{id}/status", s.handleUpdateOfferStatus)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
