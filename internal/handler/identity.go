package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/summit-seekers/forum-service/internal/dto"
)

func (h *Handler) identityRegisterKey(c *gin.Context) {
	var input dto.RegisterKeyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	token, err := h.services.Identity.RegisterKey(c.Request.Context(), id, input.SecretKey)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Token: token})
}

func (h *Handler) identitySession(c *gin.Context) {
	var input dto.SessionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	token, err := h.services.Identity.Session(c.Request.Context(), id, input.SecretKey)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Token: token})
}
