// Package rest provides HTTP handlers for order-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	ordererrors "github.com/orderhub/orderhub/internal/errors"
	"github.com/orderhub/orderhub/internal/service"
	"github.com/orderhub/orderhub/pkg/web"
)

type Handler struct {
	service  service.OrderService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.OrderService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the order service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.PlaceOrder)
	})
	r.Get("/healthz", h.HealthCheck)
}

// PlaceOrder handles the submission of a new order. A declined payment is
// still a 201: the order was accepted and persisted, and the response
// status field carries the payment outcome.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	var dto service.PlaceOrderDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to place order", "items", len(dto.Items))
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.PlaceOrder(r.Context(), dto)
	if err != nil {
		if isValidationError(err) {
			mLogger.WarnContext(r.Context(), "Order rejected", "error", err)
			web.RespondError(w, mLogger, http.StatusBadRequest, err.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error placing order", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to place order")
		return
	}
	mLogger.InfoContext(r.Context(), "Order placed",
		slog.String("order_id", resp.OrderID), slog.String("status", resp.Status))
	web.RespondJSON(w, mLogger, http.StatusCreated, resp)
}

// List retrieves all persisted orders in insertion order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	list, err := h.service.ListOrders(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving order list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved order list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// isValidationError reports whether err is one of the request rejection
// sentinels, the only error class surfaced to the caller as a 400.
func isValidationError(err error) bool {
	return errors.Is(err, ordererrors.ErrNoItems) ||
		errors.Is(err, ordererrors.ErrInvalidQuantity) ||
		errors.Is(err, ordererrors.ErrNegativePrice) ||
		errors.Is(err, ordererrors.ErrContactRequired)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
