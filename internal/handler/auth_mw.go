package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/summit-seekers/forum-service/internal/dto"
	"github.com/summit-seekers/forum-service/pkg/utils"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	id, err := h.identityFromAccessToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("identityID", *id)

	c.Next()
}

func (h *Handler) identityFromAccessToken(c *gin.Context) (*uuid.UUID, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errNotAuthorized
	}

	accessToken := strings.TrimPrefix(header, "Bearer ")
	if accessToken == "" {
		return nil, errNotAuthorized
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		return nil, err
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	if _, err := h.services.Identity.FindByID(c.Request.Context(), id); err != nil {
		return nil, err
	}

	return &id, nil
}
