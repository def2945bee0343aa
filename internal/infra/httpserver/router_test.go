package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/platex-api/internal/application/analysis"
	"github.com/bryanwahyu/platex-api/internal/infra/openfoodfacts"
)

// newTestRouter builds the router around a service with no backend
// credentials, so every analysis endpoint answers from the demo gate.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := &appanalysis.Service{Logger: zap.NewNop()}
	return NewRouter(svc, openfoodfacts.NewClient(), zap.NewNop())
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Run("TextOnlyMultipartReturnsCannedAnalysis", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("text", "chicken and rice"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		newTestRouter(t).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["is_mock"])
		assert.NotEmpty(t, body["ingredients"])
	})

	t.Run("EmptyFormIsValidationError", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		newTestRouter(t).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "validation_error", body["error"])
	})

	t.Run("UnsupportedImageTypeIsRejected", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("image", "menu.pdf")
		require.NoError(t, err)
		fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/analyze", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		newTestRouter(t).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestJSONEndpoints(t *testing.T) {
	router := newTestRouter(t)

	post := func(t *testing.T, path, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("VoiceCommandRoutes", func(t *testing.T) {
		rec := post(t, "/v1/voice/command", `{"transcript": "what did I eat today?"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "CHAT", body["action"])
	})

	t.Run("MalformedJSONIsValidationError", func(t *testing.T) {
		rec := post(t, "/v1/planner", `{"profile": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("EmptyProfileIsValidationError", func(t *testing.T) {
		rec := post(t, "/v1/planner", `{"profile": {}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ChatAnswersInDemoMode", func(t *testing.T) {
		rec := post(t, "/v1/chat", `{"message": "hi"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["reply"])
	})

	t.Run("SaveRecipeWithoutAuthIsRejected", func(t *testing.T) {
		rec := post(t, "/v1/recipes", `{"recipe": {"name": "Omelette"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBarcodeEndpoint(t *testing.T) {
	t.Run("MissingCodeIsValidationError", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/barcode", nil)
		rec := httptest.NewRecorder()
		newTestRouter(t).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
