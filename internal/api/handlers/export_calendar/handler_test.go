package export_calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	exportCalendar "github.com/m04kA/rental-guide-service/internal/usecase/export_calendar"
)

type useCaseStub struct {
	resp *exportCalendar.Response
	err  error
}

func (s useCaseStub) Execute(context.Context, *exportCalendar.Request) (*exportCalendar.Response, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc ExportCalendarUseCase) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/properties/{propertyId}/calendar.ics", NewHandler(uc, nopLogger{}).Handle)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/properties/casa-azul/calendar.ics", nil))
	return rr
}

func TestHandle(t *testing.T) {
	rr := serve(useCaseStub{resp: &exportCalendar.Response{
		Filename: "casa-azul.ics",
		Body:     "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n",
	}})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="casa-azul.ics"`, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "BEGIN:VCALENDAR")
}

func TestHandle_NotFound(t *testing.T) {
	rr := serve(useCaseStub{err: exportCalendar.ErrPropertyNotFound})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
