package search

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/knowledge-base/pkg/database"
)

// SetupSearchRoutes 设置搜索相关路由
func SetupSearchRoutes(r *gin.RouterGroup, db *gorm.DB, cache *database.RedisClient) {
	searchHandler := NewSearchHandler(db, cache)

	searchGroup := r.Group("/search")
	{
		searchGroup.GET("/articles", searchHandler.SearchArticles)   // 搜索文章
		searchGroup.GET("/suggestions", searchHandler.GetSuggestions) // 搜索建议
	}
}
