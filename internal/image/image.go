// Package image defines the photo payload contract and the optimizer
// collaborator interface. Payloads are opaque data-URL strings: the store
// never decodes pixels, it only checks shape and size.
package image

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults mirroring the client-side optimizer: resize to at most 1920px on
// the long edge and re-encode as JPEG at quality 0.8.
const (
	DefaultMaxDimension = 1920
	DefaultQuality      = 0.8
)

// Optimizer shrinks an encoded image payload before it is attached to a
// destination. The store treats whatever comes back as an opaque string.
type Optimizer interface {
	Optimize(payload string, maxDimension int, quality float64) (string, error)
}

// CheckPayload verifies that payload looks like an inline-encoded image and
// fits within maxBytes. It is called per photo before a batch is accepted;
// one failing payload rejects the whole batch.
func CheckPayload(payload string, maxBytes int) error {
	if payload == "" {
		return errors.New("empty payload")
	}
	if !strings.HasPrefix(payload, "data:image/") {
		return errors.New("not an image payload")
	}
	if len(payload) > maxBytes {
		return fmt.Errorf("payload exceeds %d bytes", maxBytes)
	}
	return nil
}

// Passthrough is an Optimizer that validates and returns the payload
// unchanged. Actual resizing happens client-side before upload; this keeps
// the collaborator seam in place without re-encoding on the server.
type Passthrough struct {
	// MaxBytes caps accepted payloads. Zero means 5 MiB.
	MaxBytes int
}

// Optimize validates the payload and passes it through.
func (p Passthrough) Optimize(payload string, _ int, _ float64) (string, error) {
	max := p.MaxBytes
	if max <= 0 {
		max = 5 << 20
	}
	if err := CheckPayload(payload, max); err != nil {
		return "", fmt.Errorf("image.Passthrough.Optimize: %w", err)
	}
	return payload, nil
}
