package compress

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestUngzipper(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.Write(body)
	})

	var zipped bytes.Buffer
	zw := gzip.NewWriter(&zipped)
	_, err := zw.Write([]byte(`{"order":"شاي"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var bomb bytes.Buffer
	zw = gzip.NewWriter(&bomb)
	_, err = zw.Write(bytes.Repeat([]byte("a"), maxInflatedBytes+1))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	testCases := []struct {
		name         string
		body         []byte
		encoding     string
		expectedCode int
		expectedBody string
	}{
		{name: "plain", body: []byte(`{"order":"tea"}`), expectedCode: http.StatusOK, expectedBody: `{"order":"tea"}`},
		{name: "gzip", body: zipped.Bytes(), encoding: "gzip", expectedCode: http.StatusOK, expectedBody: `{"order":"شاي"}`},
		{name: "inflates too large", body: bomb.Bytes(), encoding: "gzip", expectedCode: http.StatusRequestEntityTooLarge, expectedBody: "http: request body too large\n"},
		{name: "broken gzip", body: []byte("smth"), encoding: "gzip", expectedCode: http.StatusBadRequest, expectedBody: "Could not parse body\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(tc.body))
			if tc.encoding != "" {
				req.Header.Set("Content-Encoding", tc.encoding)
			}
			rec := httptest.NewRecorder()

			RequestUngzipper{}.Handle(echo).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, tc.expectedBody, rec.Body.String())
		})
	}
}
