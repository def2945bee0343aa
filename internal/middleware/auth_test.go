package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]string{"user-1": "secret-key-1"}

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetUserFromContext(r.Context())))
	})
	handler := APIKeyAuth(keys)(echo)

	t.Run("NoHeaderPassesThroughAsGuest", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/logs/latest", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "", rec.Body.String())
	})

	t.Run("BearerKeyResolvesUser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/logs/latest", nil)
		req.Header.Set("Authorization", "Bearer secret-key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("RawKeyResolvesUser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/logs/latest", nil)
		req.Header.Set("Authorization", "secret-key-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("UnknownKeyIsRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/logs/latest", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
