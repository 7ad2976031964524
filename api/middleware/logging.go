package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/haylibi/jellio-plus/internal/logger"
)

// Struct that holds response data.
type responseData struct {
	status int
	size   int
}

// Wrapper around http.ResponseWriter which allows us to capture the response data after the handler function returns.
type loggingResponseWriter struct {
	http.ResponseWriter // compose original http.ResponseWriter
	responseData        *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode) // write status code using original http.ResponseWriter
	r.responseData.status = statusCode       // capture status code
}

func WithLogging(next http.Handler) http.Handler {
	loggingFn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := loggingResponseWriter{
			ResponseWriter: w, // compose original http.ResponseWriter
			responseData:   &responseData{status: http.StatusOK},
		}

		next.ServeHTTP(&lw, r)

		duration := time.Since(start)

		msg := fmt.Sprintf("Request: method: %s | status: %d | size: %d | duration: %s | url: %s",
			r.Method, lw.responseData.status, lw.responseData.size, duration, r.URL.Path)

		logger.LogInfo.Print(msg)
	}

	return http.HandlerFunc(loggingFn)
}
