package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/rental-guide-service/internal/api/handlers"
)

// OperatorIDHeader заголовок с идентификатором оператора; он же ключ сессии ленты
const OperatorIDHeader = "X-Operator-ID"

const (
	maxOperatorIDLength = 128
	msgMissingOperator  = "identificação do operador ausente"
)

type operatorIDKey struct{}

// Auth пропускает только запросы с непустым X-Operator-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operatorID := strings.TrimSpace(r.Header.Get(OperatorIDHeader))
		if operatorID == "" || len(operatorID) > maxOperatorIDLength {
			handlers.RespondUnauthorized(w, msgMissingOperator)
			return
		}

		ctx := context.WithValue(r.Context(), operatorIDKey{}, operatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperatorID возвращает идентификатор оператора из контекста
func GetOperatorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorIDKey{}).(string)
	return id, ok && id != ""
}

// WithOperatorID кладет идентификатор оператора в контекст
func WithOperatorID(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorIDKey{}, operatorID)
}
