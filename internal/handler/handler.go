package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/summit-seekers/forum-service/internal/service"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "PATCH", "PUT", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		identity := v1.Group("/identity")
		{
			identity.PUT("/key", h.identityRegisterKey)
			identity.POST("/session", h.identitySession)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsFeed)
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.POST("/uploadImage", h.authMiddleware, h.postsUploadImage)

			post := posts.Group("/:postID")
			{
				post.GET("", h.notRequiredAuthMiddleware, h.postsGetByID)
				post.PATCH("", h.authMiddleware, h.postsEdit)
				post.DELETE("", h.authMiddleware, h.postsDelete)
				post.POST("/upvote", h.authMiddleware, h.postsUpvote)

				post.GET("/comments", h.commentsGet)
				post.POST("/comments", h.authMiddleware, h.commentsCreate)
			}
		}
	}

	return r
}

func (h *Handler) getIdentityFromRequest(c *gin.Context) *uuid.UUID {
	idReq, _ := c.Get("identityID")

	id, ok := idReq.(uuid.UUID)
	if !ok {
		return nil
	}

	return &id
}
