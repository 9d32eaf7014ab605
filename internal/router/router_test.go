package router_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"umlage/internal/domain"
	"umlage/internal/handler"
	"umlage/internal/metrics"
	"umlage/internal/router"
	"umlage/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T, m *metrics.Metrics) (*gin.Engine, *mocks.MockInvoiceService) {
	t.Helper()
	svc := new(mocks.MockInvoiceService)
	r := router.Setup(
		zerolog.Nop(),
		router.Options{AllowedOrigins: []string{"http://localhost:3000"}, Metrics: m, Swagger: true},
		handler.NewInvoiceHandler(svc, handler.UploadLimits{}, zerolog.Nop()),
		handler.NewHealthHandler(nil),
	)
	return r, svc
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndRequestID(t *testing.T) {
	r, _ := newEngine(t, nil)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_ProcessRoute(t *testing.T) {
	m := metrics.New()
	r, svc := newEngine(t, m)
	svc.On("ProcessBatch", mock.Anything, mock.Anything).
		Return(&domain.BatchResult{BatchID: "b", Invoices: []domain.FileResult{}}, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("files", "a.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/process", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer ignored")

	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"batch_id":"b","invoices":[]}`, w.Body.String())

	scrape := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), `http_requests_total{route="/api/v1/invoices/process",status="200"} 1`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	r, _ := newEngine(t, nil)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _ := newEngine(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/invoices/process", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_SwaggerDoc(t *testing.T) {
	r, _ := newEngine(t, nil)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/invoices/process")
}
