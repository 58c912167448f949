package list_properties

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/rental-guide-service/internal/service/properties/models"
)

type serviceStub struct {
	resp *models.PropertyListResponse
	err  error
}

func (s serviceStub) List(context.Context) (*models.PropertyListResponse, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		svc        serviceStub
		wantStatus int
	}{
		{
			name:       "ok",
			svc:        serviceStub{resp: &models.PropertyListResponse{Properties: []models.PropertyResponse{{ID: "casa-azul"}}}},
			wantStatus: http.StatusOK,
		},
		{name: "store error", svc: serviceStub{err: errors.New("timeout")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewHandler(tt.svc, nopLogger{}).Handle(rr, httptest.NewRequest(http.MethodGet, "/properties", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"id":"casa-azul"`)
			}
		})
	}
}
