// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts handled requests by method, route pattern and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration observes request latency by method and route pattern.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// ContactSubmissions counts accepted contact form submissions.
	ContactSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions stored.",
		},
	)
	// ContactsUnread is the number of unread contact submissions at the last refresh.
	ContactsUnread = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contacts_unread",
			Help: "Number of contact submissions not yet marked as read.",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, ContactSubmissions, ContactsUnread)
}

// Middleware records HTTPRequests and HTTPDuration for every request.
// Handler errors are resolved through echo's error handler first so the
// recorded status is the one sent to the client.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			HTTPRequests.WithLabelValues(method, route, status).Inc()
			HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
