package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/blueprintfitness/pkg"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			resp := &responseWriter{w, http.StatusOK}

			next.ServeHTTP(resp, r)

			log.WithFields(log.Fields{
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    resp.statusCode,
				"client_ip": pkg.ClientIP(r),
				"ua":        r.Header.Get("User-Agent"),
				"took":      time.Since(begin).String(),
			}).Trace(" ====> request")
		})
	}
}
