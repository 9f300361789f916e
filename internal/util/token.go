package util

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
)

func GenerateUUID() string {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		log.Fatalf("Failed to generate UUID: %v", err)
	}
	return newUUID.String()
}

// GenerateOrderToken builds a fallback order identifier for intake
// messages that carry no idempotency token: unix milliseconds plus a
// random hex suffix. Duplicates cannot be detected in this mode.
func GenerateOrderToken() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + GenerateUUID()[:8]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + hex.EncodeToString(suffix)
}
