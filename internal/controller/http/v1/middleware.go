package httpv1

import (
	"strconv"
	"time"

	logginghelper "github.com/Egor213/LogLens/internal/controller/common/logging"
	"github.com/Egor213/LogLens/internal/metrics"
	"github.com/labstack/echo/v4"
)

func NoCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderCacheControl, "no-store, no-cache, must-revalidate, max-age=0")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		return next(c)
	}
}

func Instrument(counters *metrics.Counters) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			counters.HTTPRequests.Inc(c.Path(), strconv.Itoa(status))
			logginghelper.LogRequest(c.Request().Method, c.Path(), status, time.Since(start))
			return nil
		}
	}
}
