package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/stadiumstories/cricket-gateway/internal/api/respond"
	"github.com/stadiumstories/cricket-gateway/internal/metrics"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cashfree"
)

// createQRRequest is the booking payload. The frontend resolves the
// stadium/tier selection to a final amount before calling; only the amount
// crosses the wire.
type createQRRequest struct {
	Amount *float64 `json:"amount"`
}

// CreateQR creates a hosted payment link + QR for a ticket amount.
// Validation happens before any outbound call.
// @Summary Create payment link and QR
// @Tags payment
// @Accept json
// @Produce json
// @Param body body createQRRequest true "Ticket amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/payment/create-qr [post]
func (h *Handler) CreateQR(w http.ResponseWriter, r *http.Request) {
	var req createQRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Amount == nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Enter a valid amount greater than 0")
		return
	}

	amount := *req.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Enter a valid amount greater than 0")
		return
	}

	linkID := fmt.Sprintf("rcb_ticket_%d", time.Now().UnixMilli())

	link, err := h.payments.CreateTicketLink(r.Context(), linkID, amount)
	if err != nil {
		metrics.PaymentLinksTotal.WithLabelValues("failure").Inc()
		h.logger.Error("payment link creation failed", "link_id", linkID, "error", err)

		if pe, ok := cashfree.AsProviderError(err); ok {
			respond.WriteErrorDetail(w, http.StatusInternalServerError, "UPSTREAM_ERROR",
				"Failed to create payment QR", pe.Body)
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "NETWORK_ERROR", "Failed to create payment QR")
		return
	}

	metrics.PaymentLinksTotal.WithLabelValues("success").Inc()
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"linkId":      link.LinkID,
		"paymentLink": link.LinkURL,
		"qrCode":      link.QRCode,
	})
}
