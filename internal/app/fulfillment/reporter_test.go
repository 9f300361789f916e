package fulfillment

import (
	"testing"

	"go.uber.org/zap"
)

func TestReport_OnlyFailuresInOrder(t *testing.T) {
	outcomes := []Outcome{
		{EnvelopeID: "0-1", OrderID: "a", Success: true},
		{EnvelopeID: "0-2", OrderID: "b", Success: false, FailureReason: "stock check: oracle down"},
		{EnvelopeID: "0-3", OrderID: "c", Success: true},
		{EnvelopeID: "0-4", Success: false, FailureReason: "malformed intake message"},
	}

	manifest := NewReporter(zap.NewNop()).Report(outcomes)
	if len(manifest) != 2 || manifest[0] != "0-2" || manifest[1] != "0-4" {
		t.Fatalf("unexpected manifest: %v", manifest)
	}
}

func TestReport_EmptyForAllSuccess(t *testing.T) {
	outcomes := []Outcome{
		{EnvelopeID: "0-1", OrderID: "a", Success: true},
		{EnvelopeID: "0-2", OrderID: "b", Success: true},
	}

	manifest := NewReporter(zap.NewNop()).Report(outcomes)
	if len(manifest) != 0 {
		t.Fatalf("manifest should be empty: %v", manifest)
	}
}

func TestReport_FallsBackToOrderID(t *testing.T) {
	outcomes := []Outcome{
		{OrderID: "abc-123", Success: false, FailureReason: "store write"},
	}

	manifest := NewReporter(zap.NewNop()).Report(outcomes)
	if len(manifest) != 1 || manifest[0] != "abc-123" {
		t.Fatalf("unexpected manifest: %v", manifest)
	}
}
