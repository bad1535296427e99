package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/sol-portfolio/internal/application/services"
)

// maxBodyBytes bounds the request body of the fetch route
const maxBodyBytes = 1 << 16

// BalanceHandler handles HTTP requests for wallet balance endpoints
type BalanceHandler struct {
	service *services.PortfolioService
	logger  *zap.Logger
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(service *services.PortfolioService, logger *zap.Logger) *BalanceHandler {
	return &BalanceHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterFetchRoutes registers the dashboard fetch route, mounted under /api
func (h *BalanceHandler) RegisterFetchRoutes(r chi.Router) {
	r.Post("/token/fetch", h.FetchBalances)
	r.Get("/token/fetch", h.FetchBalances)
}

// RegisterRoutes registers the versioned balance routes, mounted under /api/v1
func (h *BalanceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/wallets/{address}/balances", h.GetWalletBalances)
}

type fetchRequest struct {
	Address string `json:"address"`
}

// FetchBalances handles POST and GET /api/token/fetch.
// The address comes from the JSON body or, failing that, the address query parameter.
func (h *BalanceHandler) FetchBalances(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest

	if r.Method == http.MethodPost && r.Body != nil {
		err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "Invalid request body", "")
			return
		}
	}

	if req.Address == "" {
		req.Address = r.URL.Query().Get("address")
	}

	h.writeBalances(w, r, req.Address)
}

// GetWalletBalances handles GET /api/v1/wallets/{address}/balances
func (h *BalanceHandler) GetWalletBalances(w http.ResponseWriter, r *http.Request) {
	h.writeBalances(w, r, chi.URLParam(r, "address"))
}

func (h *BalanceHandler) writeBalances(w http.ResponseWriter, r *http.Request, address string) {
	response, err := h.service.GetBalances(r.Context(), address)
	if err != nil {
		if errors.Is(err, services.ErrMissingAddress) {
			h.respondError(w, http.StatusBadRequest, "Wallet address is required", "")
			return
		}

		h.logger.Error("Failed to fetch token balances",
			zap.Error(err),
			zap.String("address", address),
		)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch token balances", err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, response)
}

func (h *BalanceHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *BalanceHandler) respondError(w http.ResponseWriter, status int, message, details string) {
	h.respondJSON(w, status, services.ErrorResponse{Error: message, Details: details})
}
