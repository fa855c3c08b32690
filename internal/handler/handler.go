package handler

import (
	"github.com/TopJodel/topjodel-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Handler struct {
	services *service.Service
	logger   *zap.Logger
}

func New(services *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(h.requestIDMiddleware)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.authRegister)
			auth.POST("/login", h.authLogin)
			auth.POST("/logout", h.authMiddleware, h.authLogout)
			auth.PATCH("/credentials", h.authMiddleware, h.authChangeCredentials)
			auth.DELETE("/user", h.authMiddleware, h.authDeleteUser)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("/me", h.authMiddleware, h.profilesGetMy)
			profiles.GET("/search", h.profilesSearch)
			profiles.GET("/:profileID", h.profilesGetByID)
			profiles.PATCH("", h.authMiddleware, h.profilesChange)
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.GET("/my", h.authMiddleware, h.postsGetMy)
			posts.GET("/author/:userID", h.postsGetByUser)

			post := posts.Group("/:postID")
			{
				post.GET("", h.postsGetByID)
				post.PATCH("", h.authMiddleware, h.postsEdit)
				post.PATCH("/topics", h.authMiddleware, h.postsUpdateTopics)
				post.DELETE("", h.authMiddleware, h.postsDelete)
				post.POST("/like", h.authMiddleware, h.postsLike)
				post.GET("/likeCount", h.postsLikeCount)
			}

			posts.POST("/likes/sync", h.authMiddleware, h.postsSyncLikeCounters)
		}

		follows := v1.Group("/follows")
		{
			follows.POST("", h.authMiddleware, h.followsCreate)
			follows.DELETE("", h.authMiddleware, h.followsDelete)
			follows.GET("", h.authMiddleware, h.followsList)
		}

		v1.GET("/feed", h.authMiddleware, h.feedGet)
	}

	return r
}
