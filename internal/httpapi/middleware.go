package httpapi

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const maxLoggedBodyBytes = 256

// statusRecorder captures what a handler wrote so it can be logged.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	maxLogBytes  int
	logBody      bytes.Buffer
	truncated    bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(payload []byte) (int, error) {
	written, err := r.ResponseWriter.Write(payload)
	r.bytesWritten += written

	if room := r.maxLogBytes - r.logBody.Len(); room > 0 {
		if len(payload) > room {
			r.logBody.Write(payload[:room])
			r.truncated = true
		} else {
			r.logBody.Write(payload)
		}
	} else if len(payload) > 0 {
		r.truncated = true
	}
	return written, err
}

func withRequestLogging(logger *log.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				maxLogBytes:    maxLoggedBodyBytes,
			}

			next.ServeHTTP(recorder, r)

			body := recorder.logBody.String()
			if recorder.truncated {
				body += "..."
			}
			if recorder.statusCode >= http.StatusBadRequest {
				logger.Printf("%s %s -> %d (%d bytes, %s) %s", r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, time.Since(started).Round(time.Millisecond), body)
				return
			}
			logger.Printf("%s %s -> %d (%d bytes, %s)", r.Method, r.URL.Path, recorder.statusCode, recorder.bytesWritten, time.Since(started).Round(time.Millisecond))
		})
	}
}

// withCORS lets a browser page on another origin call the service.
func withCORS(allowOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
