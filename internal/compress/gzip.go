package compress

import (
	"compress/gzip"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"
)

const maxInflatedBytes = 1 << 20

// RequestUngzipper transparently decodes request bodies sent with
// Content-Encoding: gzip, e.g. JSON orders posted by scripts.
type RequestUngzipper struct{}

func (u RequestUngzipper) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		reader, err := gzip.NewReader(r.Body)
		if err != nil {
			logger.Debugf("Could not ungzip request to %s: %s", r.URL.Path, err)
			http.Error(w, "Could not parse body", http.StatusBadRequest)
			return
		}
		defer reader.Close()

		r.Body = http.MaxBytesReader(w, reader, maxInflatedBytes)
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	})
}
