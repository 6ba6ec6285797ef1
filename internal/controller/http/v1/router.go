package httpv1

import (
	"github.com/Egor213/LogLens/internal/metrics"
	"github.com/Egor213/LogLens/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func ConfigureRouter(handler *echo.Echo, services *service.Services, counters *metrics.Counters) {
	handler.HideBanner = true
	handler.HidePort = true
	handler.Use(middleware.Recover())
	handler.Use(Instrument(counters))

	c := NewLogController(services.Log)

	handler.GET("/", c.Dispatch, NoCache)

	api := handler.Group("/api/v1/log", NoCache)
	api.GET("", c.GetLog)
	api.DELETE("", c.DeleteLog)
	api.GET("/size", c.FileSize)
}
