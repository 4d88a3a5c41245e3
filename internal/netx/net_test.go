package netx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadPresignedURL(t *testing.T) {
	t.Run("success 200 OK", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "sig=abc", r.URL.RawQuery)
			_, _ = w.Write([]byte("id,date\n"))
		}))
		defer srv.Close()

		body, err := DownloadPresignedURL(t.Context(), srv.Client(), srv.URL+"/exports/x.csv?sig=abc")
		require.NoError(t, err)
		assert.Equal(t, "id,date\n", string(body))
	})

	t.Run("non-200 includes status and body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<Error>SignatureDoesNotMatch</Error>" + strings.Repeat("x", 2000)))
		}))
		defer srv.Close()

		_, err := DownloadPresignedURL(t.Context(), nil, srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403 Forbidden")
		assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
		assert.Less(t, len(err.Error()), 700)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := DownloadPresignedURL(t.Context(), nil, "://bad")
		assert.Error(t, err)
	})
}
