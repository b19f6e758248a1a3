package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/summit-seekers/forum-service/internal/dto"
	"github.com/summit-seekers/forum-service/internal/service"
)

var (
	errNotAuthorized = errors.New("user is not authorized")
	errInvalidPostID = errors.New("invalid post ID")
	errLimitAndOffsetMustBeInt = errors.New("limit and offset must be int")
)

func errorStatus(err error) int {
	switch err {
	case service.ErrTitleRequired,
		service.ErrEmptyComment,
		service.ErrEmptySecretKey,
		service.ErrFileMustBeImage,
		service.ErrFileMustHaveAValidExtension:
		return http.StatusBadRequest
	case service.ErrInvalidCredentials:
		return http.StatusUnauthorized
	case service.ErrNotPostAuthor:
		return http.StatusForbidden
	case service.ErrPostNotFound:
		return http.StatusNotFound
	case service.ErrAlreadyUpvoted:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func serviceError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), dto.NewBasicResponse(false, err.Error()))
}
