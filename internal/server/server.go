package server

import (
	"ctchen222/bucketlist/internal/api/controller"
	"ctchen222/bucketlist/internal/api/middleware"
	"ctchen222/bucketlist/internal/api/response"
	"ctchen222/bucketlist/internal/api/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server owns the gin engine and the route table. Handlers get their
// dependencies through the controllers; nothing here is package-level
// state.
type Server struct {
	engine *gin.Engine
}

// NewServer builds the engine and mounts every route. Protected routes
// share a single auth middleware instance; there is no per-route token
// handling anywhere else.
func NewServer(auth *controller.AuthController, bucketlists *controller.BucketlistController, tokens service.TokenService) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestID())

	requireAuth := middleware.RequireAuth(tokens)

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/edituser", requireAuth, auth.EditUser)
		authGroup.GET("/", func(c *gin.Context) {
			response.Error(c, http.StatusUnauthorized, "Access Denied")
		})
	}

	lists := engine.Group("/bucketlists", requireAuth)
	{
		lists.GET("/", bucketlists.List)
		lists.POST("/", bucketlists.Create)
		lists.GET("/:id", bucketlists.Get)
		lists.PUT("/:id", bucketlists.Update)
		lists.DELETE("/:id", bucketlists.Delete)
		lists.POST("/:id/items", bucketlists.CreateItem)
		lists.PUT("/:id/items/:item_id", bucketlists.UpdateItem)
		lists.DELETE("/:id/items/:item_id", bucketlists.DeleteItem)
	}

	return &Server{engine: engine}
}

// Engine exposes the underlying gin engine for http.Server and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
