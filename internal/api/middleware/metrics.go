package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/api/apierror"
	"github.com/devfolio/portfolio-api/internal/api/metrics"
)

// Metrics records request latency by method, route and final status. Errors
// returned by the handler chain are resolved to the status the error handler
// will write; a panic is recorded as 500 and left for Recover to handle.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			start := time.Now()
			panicked := true
			defer func() {
				status := c.Response().Status
				switch {
				case panicked:
					status = http.StatusInternalServerError
				case err != nil && !c.Response().Committed:
					status, _, _ = apierror.Resolve(err)
				}
				route := c.Path()
				if route == "" {
					route = "unmatched"
				}

				metrics.HTTPRequestDuration.
					WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
					Observe(time.Since(start).Seconds())
			}()

			err = next(c)
			panicked = false
			return err
		}
	}
}
