package delete_block

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/rental-guide-service/internal/service/blocks"
)

type serviceStub struct{ err error }

func (s serviceStub) Delete(context.Context, string) error { return s.err }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "not found", err: blocks.ErrBlockNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: blocks.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/blocks/{blockId}", NewHandler(serviceStub{err: tt.err}, nopLogger{}).Handle)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/blocks/B1", nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
