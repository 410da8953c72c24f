package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/storecraft/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("storecraft_session", store))

	// 静态文件服务
	r.Static("/static", "./web/static")

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			// API路由
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/pages", api.ListPages)
				apiGroup.POST("/pages", api.CreatePage)
				apiGroup.GET("/pages/:id", api.GetPage)
				apiGroup.PUT("/pages/:id/meta", api.UpdatePageMeta)
				apiGroup.DELETE("/pages/:id", api.DeletePage)

				apiGroup.GET("/blocks", api.ListBlockTypes)

				// 编辑器会话
				apiGroup.POST("/editor/:id/open", api.OpenEditor)
				apiGroup.DELETE("/editor/:id", api.CloseEditor)
				apiGroup.GET("/editor/:id/state", api.EditorState)
				apiGroup.GET("/editor/:id/preview", api.EditorPreview)
				apiGroup.POST("/editor/:id/blocks", api.AddEditorBlock)
				apiGroup.DELETE("/editor/:id/blocks/:blockId", api.RemoveEditorBlock)
				apiGroup.PATCH("/editor/:id/blocks/:blockId", api.PatchEditorBlock)
				apiGroup.POST("/editor/:id/move", api.MoveEditorBlock)
				apiGroup.POST("/editor/:id/drag", api.EditorDrag)
				apiGroup.POST("/editor/:id/select", api.SelectEditorBlock)
				apiGroup.PUT("/editor/:id/meta", api.UpdateEditorMeta)
				apiGroup.POST("/editor/:id/save", api.SaveEditor)

				apiGroup.GET("/products", api.ListProducts)
				apiGroup.POST("/products", api.CreateProduct)
				apiGroup.PUT("/products/:id", api.UpdateProduct)
				apiGroup.DELETE("/products/:id", api.DeleteProduct)

				apiGroup.GET("/settings", api.GetSiteSettings)
				apiGroup.PUT("/settings", api.UpdateSiteSettings)

				apiGroup.POST("/upload", api.UploadImage)
			}
		}
	}

	// 店面数据接口
	r.GET("/api/store/products", api.ListStoreProducts)

	// 店面页面
	r.GET("/", api.ShowStoreHome)
	r.GET("/:slug", api.ShowStorePage)

	return r
}
