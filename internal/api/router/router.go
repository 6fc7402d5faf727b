package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/medlink/doctor-dispatch/internal/api/handlers/call"
	"github.com/medlink/doctor-dispatch/internal/middlewares"
)

func New(handler *call.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	e.GET("/", func(c *ginext.Context) {
		c.String(http.StatusOK, "doctor-dispatch is running")
	})

	api := e.Group("/api")
	{
		calls := api.Group("/calls")
		{
			calls.POST("/", handler.Create)
			calls.GET("/:id", handler.GetStatus)
			calls.POST("/:id/claim", handler.Claim)
			calls.DELETE("/:id", handler.Cancel)
		}

		api.POST("/doctors/search", handler.SearchDoctors)
	}

	return e
}
