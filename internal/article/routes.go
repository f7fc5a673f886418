package article

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupArticleRoutes 设置文章相关路由
func SetupArticleRoutes(r *gin.RouterGroup, db *gorm.DB) {
	articleHandler := NewArticleHandler(db)

	articles := r.Group("/articles")
	{
		articles.POST("", articleHandler.CreateArticle)            // 创建文章
		articles.GET("", articleHandler.GetArticles)               // 文章列表
		articles.GET("/:id", articleHandler.GetArticle)            // 文章详情
		articles.PUT("/:id", articleHandler.UpdateArticle)         // 更新文章
		articles.DELETE("/:id", articleHandler.DeleteArticle)      // 删除文章
		articles.GET("/:id/history", articleHandler.GetArticleHistory) // 文章历史
	}
}
