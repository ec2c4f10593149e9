package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/procurelink/backend/config"
	"github.com/procurelink/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	editorHandler *handler.EditorHandler,
	templateHandler *handler.TemplateHandler,
	catalogHandler *handler.CatalogHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		api.GET("/catalog", catalogHandler.List)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", editorHandler.CreateSession)
			sessions.GET("/:id", editorHandler.GetSession)
			sessions.DELETE("/:id", editorHandler.CloseSession)
			sessions.PUT("/:id/metadata", editorHandler.SetMetadata)

			sessions.POST("/:id/sections", editorHandler.AddSection)
			sessions.PUT("/:id/sections/:sectionId", editorHandler.UpdateSection)
			sessions.DELETE("/:id/sections/:sectionId", editorHandler.RemoveSection)
			sessions.POST("/:id/sections/:sectionId/toggle", editorHandler.ToggleSection)

			sessions.POST("/:id/sections/:sectionId/fields", editorHandler.AddField)
			sessions.PUT("/:id/sections/:sectionId/fields/:fieldId", editorHandler.UpdateField)
			sessions.DELETE("/:id/sections/:sectionId/fields/:fieldId", editorHandler.RemoveField)

			sessions.POST("/:id/drag/begin", editorHandler.BeginDrag)
			sessions.POST("/:id/drag/drop", editorHandler.Drop)
			sessions.POST("/:id/drag/end", editorHandler.EndDrag)

			sessions.GET("/:id/preview", editorHandler.Preview)
			sessions.PUT("/:id/preview/values/:fieldId", editorHandler.SetPreviewValue)

			sessions.POST("/:id/submit", editorHandler.Submit)
		}

		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.GET("/:id", templateHandler.Get)
			templates.DELETE("/:id", templateHandler.Delete)
			templates.POST("/:id/publish", templateHandler.Publish)
			templates.POST("/:id/archive", templateHandler.Archive)
			templates.POST("/:id/duplicate", templateHandler.Duplicate)
		}
	}

	return r
}
