package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	beacon "github.com/Tap30/beacon-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// Tracker is the part of beacon.Client the relay uses.
type Tracker interface {
	Track(eventType string, data beacon.EventData)
	TrackPurchase(p beacon.Purchase)
}

type trackRequest struct {
	EventType  string         `json:"eventType" validate:"required"`
	UUID       string         `json:"uuid" validate:"required"`
	GACategory string         `json:"gaCategory"`
	GALabel    string         `json:"gaLabel"`
	Properties map[string]any `json:"properties"`
}

type purchaseRequest struct {
	UUID          string   `json:"uuid" validate:"required"`
	SKU           string   `json:"sku" validate:"required"`
	PaymentMethod string   `json:"paymentMethod" validate:"required"`
	ItemPurchased string   `json:"itemPurchased" validate:"required"`
	PurchaseValue *float64 `json:"purchaseValue" validate:"required,gte=0"`
	PurchaseType  string   `json:"purchaseType" validate:"required"`
	Quantity      *int     `json:"quantity" validate:"required,min=1"`
	Gift          bool     `json:"gift"`
}

// Handler exposes the tracking operations over HTTP.
type Handler struct {
	tracker  Tracker
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(tracker Tracker, logger *zap.Logger) *Handler {
	return &Handler{
		tracker:  tracker,
		validate: validator.New(),
		logger:   logger,
	}
}

// NewRouter wires the relay routes. gatherer may be nil to disable /metrics.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/track", h.Track)
		r.Post("/purchase", h.TrackPurchase)
	})
	return r
}

func (h *Handler) Track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.tracker.Track(req.EventType, beacon.EventData{
		UUID:       req.UUID,
		GACategory: req.GACategory,
		GALabel:    req.GALabel,
		Properties: req.Properties,
	})

	h.logger.Debug("event relayed",
		zap.String("event_type", req.EventType),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *Handler) TrackPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.tracker.TrackPurchase(beacon.Purchase{
		UUID:          req.UUID,
		SKU:           req.SKU,
		PaymentMethod: req.PaymentMethod,
		ItemPurchased: req.ItemPurchased,
		PurchaseValue: *req.PurchaseValue,
		PurchaseType:  req.PurchaseType,
		Quantity:      *req.Quantity,
		Gift:          req.Gift,
	})

	h.logger.Debug("purchase relayed",
		zap.String("sku", req.SKU),
		zap.Bool("gift", req.Gift),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// decode reads and validates the body, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	if err := dec.Decode(dst); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
