package notify

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

// Payload тело уведомления об изменении: {"kind":"reservation","propertyId":"casa-azul"}
type Payload struct {
	Kind       domain.RecordKind `json:"kind"`
	PropertyID string            `json:"propertyId,omitempty"`
}

// DecodePayload разбирает тело уведомления
func DecodePayload(extra string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(extra), &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !p.Kind.IsValid() {
		return Payload{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, p.Kind)
	}
	return p, nil
}
