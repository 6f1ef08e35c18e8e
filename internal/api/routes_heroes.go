package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/heroes/internal/handlers"
)

func registerHeroRoutes(router gin.IRouter, handler *handlers.HeroHandler) {
	if router == nil || handler == nil {
		return
	}

	heroes := router.Group("/heroes")
	{
		heroes.POST("", handler.Create)
		heroes.GET("", handler.List)
		heroes.GET("/:id", handler.Get)
		heroes.PATCH("/:id", handler.Update)
		heroes.DELETE("/:id", handler.Delete)
	}
}
