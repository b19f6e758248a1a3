package handler

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	id, err := h.identityFromAccessToken(c)
	if err != nil {
		c.Next()
		return
	}

	c.Set("identityID", *id)

	c.Next()
}
