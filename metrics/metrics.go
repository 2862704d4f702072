package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freshkart_http_requests_total",
			Help: "HTTP requests processed, partitioned by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	orderStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "freshkart_order_status_updates_total",
			Help: "Order status transitions applied, partitioned by target status.",
		},
		[]string{"status"},
	)

	agentAssignments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "freshkart_delivery_agent_assignments_total",
			Help: "Delivery agent assignments performed.",
		},
	)
)

// Middleware counts every request by method, matched route and status.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
		}
		requestsTotal.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
		return err
	}
}

// Handler exposes the prometheus registry, wrapped for echo.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// CountOrderStatusUpdate records a successful order transition.
func CountOrderStatusUpdate(status string) {
	orderStatusUpdates.WithLabelValues(status).Inc()
}

// CountAgentAssignment records a successful agent assignment.
func CountAgentAssignment() {
	agentAssignments.Inc()
}
