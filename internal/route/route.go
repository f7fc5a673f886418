package route

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/internal/article"
	"terminal-terrace/knowledge-base/internal/category"
	"terminal-terrace/knowledge-base/internal/search"
	pkgdb "terminal-terrace/knowledge-base/pkg/database"
)

func SetupRouter(db *gorm.DB, cache *pkgdb.RedisClient) *gin.Engine {
	r := gin.Default()

	origin := os.Getenv("FRONTEND_URL")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		article.SetupArticleRoutes(api, db)
		category.SetupCategoryRoutes(api, db)
		search.SetupSearchRoutes(api, db, cache)
	}

	return r
}
