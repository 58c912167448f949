package reservation

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/m04kA/rental-guide-service/pkg/types"
)

const cursorVersionV1 = "v1"

// Cursor позиция в архиве: последняя выданная запись в порядке (checkout DESC, id DESC)
type Cursor struct {
	Checkout types.Date
	ID       string
}

// EncodeCursor упаковывает позицию в непрозрачную строку
func EncodeCursor(c Cursor) string {
	data := fmt.Sprintf("%s:%s|%s", cursorVersionV1, c.Checkout, c.ID)
	return base64.URLEncoding.EncodeToString([]byte(data))
}

// DecodeCursor разбирает строку, выданную EncodeCursor
func DecodeCursor(s string) (Cursor, error) {
	decoded, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: decode base64: %v", ErrInvalidCursor, err)
	}

	payload, ok := strings.CutPrefix(string(decoded), cursorVersionV1+":")
	if !ok {
		return Cursor{}, fmt.Errorf("%w: unsupported version", ErrInvalidCursor)
	}

	checkout, id, ok := strings.Cut(payload, "|")
	if !ok || id == "" {
		return Cursor{}, fmt.Errorf("%w: expected '<checkout>|<id>'", ErrInvalidCursor)
	}

	date, err := types.ParseDate(checkout)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	return Cursor{Checkout: date, ID: id}, nil
}
