package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/haylibi/jellio-plus/internal/config"
	"github.com/haylibi/jellio-plus/internal/logger"

	"golang.org/x/time/rate"
)

// client is a wrapper around rate.Limiter that also holds info on when the client was last seen.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// A map that holds a limiter for each client that made a request. The keys are IP addresses.
var clients = make(map[string]*client)
var mtx sync.RWMutex

// getLimiterFromClient returns a rate.Limiter for a specific IP address from the clients map.
func getLimiterFromClient(ip string) *rate.Limiter {
	mtx.RLock()
	c, ok := clients[ip]
	mtx.RUnlock()

	if !ok {
		limiter := rate.NewLimiter(rate.Limit(config.RateLimitingRate), config.RateLimitingBurst)

		mtx.Lock()
		clients[ip] = &client{limiter: limiter, lastSeen: time.Now()}
		mtx.Unlock()

		return limiter
	}

	mtx.Lock()
	c.lastSeen = time.Now()
	mtx.Unlock()

	return c.limiter
}

// CleanupLimiters is meant to be used in a goroutine to periodically clear unused limiters.
func CleanupLimiters(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mtx.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mtx.Unlock()
		}
	}
}

func WithRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := getIP(r)
		if err != nil {
			logger.LogError.Printf("WithRateLimit: %s", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		limiter := getLimiterFromClient(ip)
		if !limiter.Allow() {
			logger.LogInfo.Printf("WithRateLimit: rate-limited %s", ip)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getIP attempts to retrieve the IP through multiple methods from an http.Request.
func getIP(r *http.Request) (string, error) {
	var err error

	ip := r.Header.Get("X-Forwarded-For")

	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}

	if ip == "" {
		ip, _, err = net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "", fmt.Errorf("GetIP: %w", err)
		}
	}

	if ip == "" {
		return "", fmt.Errorf("GetIP: no IP found")
	}

	return ip, nil
}
