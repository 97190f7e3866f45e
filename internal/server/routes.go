package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"framediff/internal/logging"
	"framediff/internal/query"
)

// NewRouter wires middleware, API endpoints, pages, and the image passthrough.
func NewRouter(svc *query.Service, allowedOrigins []string, logger *slog.Logger) *gin.Engine {
	logger = logging.NewComponentLogger(logger, "http")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog(logger))
	r.Use(corsMiddleware(allowedOrigins))
	r.SetHTMLTemplate(loadTemplates())

	api := NewHandlers(svc)
	pages := NewPages(svc)

	r.GET("/healthz", api.Health)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/targets", api.Targets)
		apiGroup.GET("/targets/:target", api.Target)
		apiGroup.GET("/targets/:target/builds/:build", api.Build)
		apiGroup.GET("/targets/:target/movies/:movie/frames", api.MovieFrames)
		apiGroup.GET("/movies/:movie", api.Movie)
		apiGroup.GET("/compare/:target/:build1/:build2/:movie", api.Compare)
		apiGroup.GET("/diff/:target/:build1/:build2/:movie/:frame", api.FrameDiff)
		apiGroup.GET("/browse", api.Browse)
	}

	r.GET("/images/*path", api.Image)

	r.GET("/", pages.Index)
	r.GET("/browse", pages.Browse)
	r.GET("/targets/:target", pages.Target)
	r.GET("/targets/:target/compare/:build1/:build2/:movie", pages.Compare)

	return r
}
