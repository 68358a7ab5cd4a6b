package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/internal/cart"
	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/configurator"
	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/pricing"
	"github.com/brndagencynl/HETT-sub001/internal/storage"
	"github.com/brndagencynl/HETT-sub001/internal/visual"
)

type quoteRequest struct {
	Configuration configurator.Configuration `json:"configuration"`
}

type cartLineRequest struct {
	Configuration configurator.Configuration `json:"configuration"`
	Contact       string                     `json:"contact"`
}

type quoteResponse struct {
	Complete         bool               `json:"complete"`
	ValidationErrors map[string]string  `json:"validation_errors,omitempty"`
	Breakdown        *pricing.Breakdown `json:"breakdown,omitempty"`
	GrandTotal       string             `json:"grand_total,omitempty"`
	Layers           []visual.Layer     `json:"layers"`
	Fingerprint      string             `json:"fingerprint"`
}

// priceConfiguration runs the full pricing pipeline for either domain. For
// the standard domain the base price is fetched from the commerce backend
// and injected; the engine itself stays free of I/O.
func (s *Server) priceConfiguration(ctx context.Context, cfg configurator.Configuration) (pricing.Breakdown, error) {
	if cfg.Domain == configurator.DomainCustom {
		return pricing.PriceCustom(s.catalog, cfg)
	}

	size, err := s.catalog.StandardSize(cfg.WidthCM, cfg.DepthCM)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	basePrice, err := s.commerce.VariantPrice(ctx, size.Variant)
	if err != nil {
		return pricing.Breakdown{}, fmt.Errorf("variant %s: %w", size.Variant, err)
	}
	return pricing.PriceStandard(s.catalog, cfg, size.Size, basePrice)
}

// handlePrice prices a possibly-partial configuration for live preview.
// Validation errors ride along; a partial total is returned but flagged
// incomplete so the wizard never treats it as final.
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "bad json: "+err.Error())
		return
	}

	bd, err := s.priceConfiguration(r.Context(), req.Configuration)
	if err != nil {
		s.handleError(w, err)
		return
	}

	validationErrs := configurator.ValidationErrors(s.catalog, req.Configuration)
	s.writeJSON(w, http.StatusOK, quoteResponse{
		Complete:         len(validationErrs) == 0,
		ValidationErrors: validationErrs,
		Breakdown:        &bd,
		GrandTotal:       money.FromCents(bd.GrandTotal),
		Layers:           visual.BuildLayers(req.Configuration),
		Fingerprint:      configurator.Fingerprint(req.Configuration),
	})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "bad json: "+err.Error())
		return
	}

	validationErrs := configurator.ValidationErrors(s.catalog, req.Configuration)
	s.writeJSON(w, http.StatusOK, quoteResponse{
		Complete:         len(validationErrs) == 0,
		ValidationErrors: validationErrs,
		Layers:           nil,
		Fingerprint:      configurator.Fingerprint(req.Configuration),
	})
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "bad json: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"layers": visual.BuildLayers(req.Configuration),
	})
}

// handleCreateCartLine is the submission gate: the configuration must be
// complete, is priced one final time, packaged, persisted and announced to
// the back office.
func (s *Server) handleCreateCartLine(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "bad json: "+err.Error())
		return
	}

	bd, err := s.priceConfiguration(r.Context(), req.Configuration)
	if err != nil {
		s.handleError(w, err)
		return
	}

	payload, err := cart.BuildPayload(s.catalog, req.Configuration, bd, visual.BuildLayers(req.Configuration))
	if err != nil {
		s.handleError(w, err)
		return
	}

	// Identical configurations hash to the same fingerprint; a resubmit
	// returns the already-stored offer instead of inserting a duplicate.
	if existing, err := s.offers.FindOfferByFingerprint(r.Context(), payload.Fingerprint); err == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"id":      existing.ID,
			"payload": payload,
		})
		return
	} else if !errors.Is(err, storage.ErrOfferNotFound) {
		s.handleError(w, err)
		return
	}

	offer, err := storage.NewOffer(payload, req.Contact)
	if err != nil {
		s.handleError(w, err)
		return
	}
	offerID, err := s.offers.SaveOffer(r.Context(), offer)
	if err != nil {
		s.handleError(w, err)
		return
	}
	offer.ID = offerID

	// Reporting and notification are best effort; the cart line is already
	// stored and must not fail because the back office is unreachable.
	excelPath, err := s.offers.ExportOfferToExcel(r.Context(), offer)
	if err != nil {
		s.logger.Error("Failed to export offer report",
			zap.Int64("offer_id", offerID),
			zap.Error(err))
	}
	if s.notifier != nil {
		s.notifier.OfferSubmitted(offer, excelPath)
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"id":      offerID,
		"payload": payload,
	})
}

func (s *Server) handleGetCartLine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "invalid offer id")
		return
	}

	offer, err := s.offers.GetOffer(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, offerDTO(offer))
}

func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := s.offers.ListOffers(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	out := make([]offerResponse, 0, len(offers))
	for i := range offers {
		out = append(out, offerDTO(&offers[i]))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"offers": out})
}

func (s *Server) handleExportOffers(w http.ResponseWriter, r *http.Request) {
	filename := "offers_" + time.Now().UTC().Format("20060102_1504")
	path, err := s.offers.ExportAllOffersToExcel(r.Context(), filename)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"path": path})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateOfferStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "invalid offer id")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "bad json: "+err.Error())
		return
	}
	if !storage.ValidOfferStatus(req.Status) {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "unknown status "+strconv.Quote(req.Status))
		return
	}

	if err := s.offers.UpdateOfferStatus(r.Context(), id, req.Status); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"configuration": cfg})
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "bad json: "+err.Error())
		return
	}

	if err := s.sessions.Save(r.Context(), chi.URLParam(r, "sessionID"), req.Configuration); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type shippingRequest struct {
	Address string `json:"address"`
}

func (s *Server) handleShippingCheck(w http.ResponseWriter, r *http.Request) {
	var req shippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "bad json: "+err.Error())
		return
	}
	if req.Address == "" {
		s.writeError(w, http.StatusBadRequest, "invalid_input", "address is required")
		return
	}

	result, err := s.shipping.Check(r.Context(), req.Address)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// Catalog DTOs: plain serializable mirrors of the immutable catalog, enough
// for the wizard to render steps. Size-scaled prices are marked as such; the
// wizard asks /api/quote/price for actual amounts.

type catalogChoiceDTO struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	PriceKind   string `json:"price_kind"`
	Price       string `json:"price,omitempty"`
}

type catalogGroupDTO struct {
	ID       string             `json:"id"`
	Label    string             `json:"label"`
	Kind     string             `json:"kind"`
	Required bool               `json:"required"`
	Choices  []catalogChoiceDTO `json:"choices,omitempty"`
}

type catalogSizeDTO struct {
	WidthCM int    `json:"width_cm"`
	DepthCM int    `json:"depth_cm"`
	Variant string `json:"variant"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	groups := make([]catalogGroupDTO, 0)
	for _, g := range s.catalog.Groups() {
		dto := catalogGroupDTO{
			ID:       g.ID,
			Label:    g.Label,
			Kind:     string(g.Kind),
			Required: g.Required,
		}
		for _, ch := range g.Choices {
			choice := catalogChoiceDTO{
				ID:          ch.ID,
				Label:       ch.Label,
				Description: ch.Description,
				PriceKind:   string(ch.Price.Kind),
			}
			if ch.Price.Kind == catalog.Flat {
				choice.Price = money.FromCents(ch.Price.Flat)
			}
			dto.Choices = append(dto.Choices, choice)
		}
		groups = append(groups, dto)
	}

	sizes := make([]catalogSizeDTO, 0)
	for _, size := range s.catalog.StandardSizes() {
		sizes = append(sizes, catalogSizeDTO{
			WidthCM: size.WidthCM,
			DepthCM: size.DepthCM,
			Variant: size.Variant,
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"groups":         groups,
		"standard_sizes": sizes,
	})
}

type offerResponse struct {
	ID          int64           `json:"id"`
	Fingerprint string          `json:"fingerprint"`
	Summary     string          `json:"summary"`
	Payload     json.RawMessage `json:"configuration"`
	Breakdown   json.RawMessage `json:"breakdown"`
	Layers      json.RawMessage `json:"layers"`
	GrandTotal  string          `json:"grand_total"`
	Status      string          `json:"status"`
}

func offerDTO(offer *storage.Offer) offerResponse {
	return offerResponse{
		ID:          offer.ID,
		Fingerprint: offer.Fingerprint,
		Summary:     offer.Summary,
		Payload:     offer.Configuration,
		Breakdown:   offer.Breakdown,
		Layers:      offer.Layers,
		GrandTotal:  money.FromCents(offer.GrandCents),
		Status:      offer.Status,
	}
}
