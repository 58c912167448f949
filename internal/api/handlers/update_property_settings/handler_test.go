package update_property_settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/rental-guide-service/internal/domain"
	"github.com/m04kA/rental-guide-service/internal/service/properties"
	"github.com/m04kA/rental-guide-service/internal/service/properties/models"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) UpdateSettings(ctx context.Context, id string, req *models.UpdateSettingsRequest) (*models.PropertyResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.PropertyResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	withFields := mock.MatchedBy(func(req *models.UpdateSettingsRequest) bool {
		return len(req.RequiredFields) == 2 && req.RequiredFields[0] == "lock_code"
	})

	tests := []struct {
		name       string
		body       string
		setup      func(m *serviceMock)
		wantStatus int
	}{
		{
			name: "updated",
			body: `{"requiredFields":["lock_code","unit_number"]}`,
			setup: func(m *serviceMock) {
				m.On("UpdateSettings", mock.Anything, "casa-azul", withFields).
					Return(&models.PropertyResponse{ID: "casa-azul", RequiredFields: []string{"lock_code", "unit_number"}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid field name",
			body: `{"requiredFields":["Lock Code"]}`,
			setup: func(m *serviceMock) {
				m.On("UpdateSettings", mock.Anything, "casa-azul", mock.Anything).
					Return(nil, domain.NewValidationError(domain.CodeInvalidFieldName, "Lock Code"))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "not found",
			body: `{"requiredFields":[]}`,
			setup: func(m *serviceMock) {
				m.On("UpdateSettings", mock.Anything, "casa-azul", mock.Anything).
					Return(nil, properties.ErrPropertyNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{name: "bad body", body: `{"requiredFields":"lock_code"}`, setup: func(*serviceMock) {}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			tt.setup(svc)

			r := mux.NewRouter()
			r.HandleFunc("/properties/{propertyId}/settings", NewHandler(svc, nopLogger{}).Handle)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/properties/casa-azul/settings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			svc.AssertExpectations(t)
		})
	}
}
