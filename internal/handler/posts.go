package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/summit-seekers/forum-service/internal/dto"
	"github.com/summit-seekers/forum-service/internal/feed"
)

func parseLimitOffset(c *gin.Context) (int, int, error) {
	limit := 0
	offset := 0
	var err error

	if limitString := c.Query("limit"); limitString != "" {
		if limit, err = strconv.Atoi(limitString); err != nil {
			return 0, 0, errLimitAndOffsetMustBeInt
		}
	}
	if offsetString := c.Query("offset"); offsetString != "" {
		if offset, err = strconv.Atoi(offsetString); err != nil {
			return 0, 0, errLimitAndOffsetMustBeInt
		}
	}

	return limit, offset, nil
}

func (h *Handler) postsFeed(c *gin.Context) {
	limit, offset, err := parseLimitOffset(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	sortKey := feed.ParseSortKey(c.Query("sort"))
	searchTerm := c.Query("q")
	var flags []string
	if flagsString := c.Query("flags"); flagsString != "" {
		flags = strings.Split(flagsString, ",")
	}

	posts, err := h.services.Post.Feed(c.Request.Context(), sortKey, searchTerm, flags, limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsCreate(c *gin.Context) {
	identityID := h.getIdentityFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), *identityID, input)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	identityID := h.getIdentityFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		serviceError(c, err)
		return
	}

	postDto := dto.GetPost{
		Post: *post,
	}

	if identityID != nil {
		postDto.Upvoted = h.services.Post.IsUpvoted(c.Request.Context(), post.Post.ID, *identityID)
	}

	c.JSON(http.StatusOK, postDto)
}

func (h *Handler) postsEdit(c *gin.Context) {
	identityID := h.getIdentityFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	var input dto.EditPostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	updatedPost, err := h.services.Post.Edit(c.Request.Context(), postID, *identityID, input)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, *updatedPost)
}

func (h *Handler) postsDelete(c *gin.Context) {
	identityID := h.getIdentityFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), postID, *identityID); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) postsUpvote(c *gin.Context) {
	identityID := h.getIdentityFromRequest(c)

	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := strconv.ParseInt(postIDString, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	upvotes, err := h.services.Post.Upvote(c.Request.Context(), postID, *identityID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpvoteResponse{Upvotes: upvotes})
}

func (h *Handler) postsUploadImage(c *gin.Context) {
	file, fileHeader, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}
	defer file.Close()

	url, err := h.services.Post.UploadImage(c.Request.Context(), file, fileHeader)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{URL: url})
}
