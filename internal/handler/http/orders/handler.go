package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/alexisfrangulefrei/projetsiteecommerce/internal/app/fulfillment"
	infraKafka "github.com/alexisfrangulefrei/projetsiteecommerce/internal/infrastructure/kafka"
)

// IdempotencyHeader carries the caller-supplied token that deduplicates
// logically identical submissions.
const IdempotencyHeader = "Idempotency-Key"

type SubmitOrderRequest struct {
	Name      string  `json:"name"`
	Firstname string  `json:"firstname"`
	Email     string  `json:"email"`
	Address   string  `json:"address"`
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type SubmitOrderResponse struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// IntakeHandler accepts a synchronous order submission, validates it and
// enqueues exactly one intake message. Fulfillment happens
// asynchronously; the caller only gets an acknowledgment.
type IntakeHandler struct {
	producer infraKafka.Producer
	topic    string
	logger   *zap.Logger
}

func NewIntakeHandler(producer infraKafka.Producer, topic string, l *zap.Logger) *IntakeHandler {
	return &IntakeHandler{producer: producer, topic: topic, logger: l}
}

func (h *IntakeHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get(IdempotencyHeader)
	if requestID == "" {
		h.logger.Warn("Order submission without idempotency key")
		http.Error(w, "Missing "+IdempotencyHeader+" header", http.StatusBadRequest)
		return
	}

	var req SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for order submission", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg := fulfillment.IntakeMessage{
		RequestID:  requestID,
		Name:       req.Name,
		Firstname:  req.Firstname,
		Email:      req.Email,
		Address:    req.Address,
		Product:    req.Product,
		Quantity:   req.Quantity,
		Price:      req.Price,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := msg.Validate(); err != nil {
		h.logger.Warn("Order submission failed validation", zap.Error(err))
		if errors.Is(err, fulfillment.ErrMalformedMessage) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Invalid order", http.StatusBadRequest)
		return
	}

	payload, err := json.Marshal(&msg)
	if err != nil {
		h.logger.Error("Failed to encode intake message", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.producer.Produce(r.Context(), h.topic, []byte(requestID), payload); err != nil {
		h.logger.Error("Failed to enqueue order", zap.String("request_id", requestID), zap.Error(err))
		http.Error(w, "Failed to queue order", http.StatusServiceUnavailable)
		return
	}

	h.logger.Info("Order queued for processing", zap.String("request_id", requestID))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(SubmitOrderResponse{
		RequestID: requestID,
		Status:    "processing",
		Message:   "Your order has been queued for processing",
	})
}
