package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	userhandler "user_backend/internal/feature/users/transport/handler"
	"user_backend/internal/platform/http/handler"
)

func NewRouter(users *userhandler.UserHandler) *gin.Engine {
	r := gin.Default()

	// WebクライアントからのアクセスのためCORSを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// ユーザーCRUD
	r.POST("/users", users.Create)
	r.GET("/users", users.List)
	r.GET("/users/:id", users.Get)
	r.PUT("/users/:id", users.Update)
	r.DELETE("/users/:id", users.Delete)

	return r
}
