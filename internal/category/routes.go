package category

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCategoryRoutes 设置分类相关路由
func SetupCategoryRoutes(r *gin.RouterGroup, db *gorm.DB) {
	categoryHandler := NewCategoryHandler(db)

	categories := r.Group("/categories")
	{
		categories.POST("", categoryHandler.CreateCategory)       // 创建分类
		categories.GET("", categoryHandler.GetCategories)         // 分类列表
		categories.GET("/roots", categoryHandler.GetRootCategories) // 根分类
		categories.GET("/:id", categoryHandler.GetCategory)       // 分类详情
		categories.PUT("/:id", categoryHandler.UpdateCategory)    // 更新分类
		categories.DELETE("/:id", categoryHandler.DeleteCategory) // 删除分类
	}
}
