package frankfurter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	c := NewClient(zerolog.New(nil).Level(zerolog.Disabled))
	c.baseURL = baseURL
	return c
}

func TestLatest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "KRW", r.URL.Query().Get("to"))
		w.Write([]byte(`{"amount": 1.0, "base": "USD", "rates": {"KRW": 1391.25}}`))
	}))
	defer srv.Close()

	rate, err := newTestClient(srv.URL).Latest("USD", "KRW")
	require.NoError(t, err)
	assert.Equal(t, 1391.25, rate)
}

func TestLatest_Failures(t *testing.T) {
	testCases := []struct {
		name string
		body string
		code int
	}{
		{name: "http error", body: `{}`, code: http.StatusBadGateway},
		{name: "missing rate field", body: `{"rates": {"JPY": 147.2}}`, code: http.StatusOK},
		{name: "malformed body", body: `{"rates": `, code: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Latest("USD", "KRW")
			assert.Error(t, err)
		})
	}
}
