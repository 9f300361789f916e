package orders

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	infraKafka "github.com/alexisfrangulefrei/projetsiteecommerce/internal/infrastructure/kafka"
)

func RegisterRoutes(r chi.Router, producer infraKafka.Producer, topic string, l *zap.Logger) {
	handler := NewIntakeHandler(producer, topic, l.With(zap.String("component", "IntakeHTTPHandler")))

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", handler.SubmitOrder)
	})
}
