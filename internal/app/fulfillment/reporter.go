package fulfillment

import "go.uber.org/zap"

// Reporter translates per-message outcomes into the queue's partial
// failure contract: only the identifiers it returns are redelivered.
type Reporter struct {
	logger *zap.Logger
}

func NewReporter(l *zap.Logger) *Reporter {
	return &Reporter{logger: l}
}

func (r *Reporter) Report(outcomes []Outcome) FailureManifest {
	manifest := FailureManifest{}
	for _, o := range outcomes {
		if o.Success {
			continue
		}
		id := o.EnvelopeID
		if id == "" {
			id = o.OrderID
		}
		r.logger.Warn("Message failed, scheduling redelivery",
			zap.String("identifier", id),
			zap.String("order_id", o.OrderID),
			zap.String("reason", o.FailureReason))
		manifest = append(manifest, id)
	}
	return manifest
}
