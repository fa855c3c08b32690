package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsCreate(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), userID, input)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postID := strings.TrimSpace(c.Param("postID"))

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsGetMy(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	h.listPosts(c, userID)
}

func (h *Handler) postsGetByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(strings.TrimSpace(c.Param("userID")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	h.listPosts(c, userID)
}

func (h *Handler) listPosts(c *gin.Context, userID int64) {
	limit, skip, err := limitAndSkip(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidLimit.Error()))
		return
	}

	posts, err := h.services.Post.FindUserPosts(c.Request.Context(), userID, limit, skip)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func limitAndSkip(c *gin.Context) (int64, int64, error) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return limit, skip, nil
}

func (h *Handler) postsEdit(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.EditPostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.Edit(c.Request.Context(), strings.TrimSpace(c.Param("postID")), userID, input)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsUpdateTopics(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.UpdateTopicsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	post, err := h.services.Post.UpdateTopics(c.Request.Context(), strings.TrimSpace(c.Param("postID")), userID, input.Topics)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), strings.TrimSpace(c.Param("postID")), userID); err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "post deleted"))
}

func (h *Handler) postsLike(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	postID := strings.TrimSpace(c.Param("postID"))
	created, err := h.services.Post.Like(c.Request.Context(), postID, userID)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	likes, err := h.services.Post.LikeCount(c.Request.Context(), postID)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.LikeResponse{Created: created, Likes: likes})
}

func (h *Handler) postsLikeCount(c *gin.Context) {
	likes, err := h.services.Post.LikeCount(c.Request.Context(), strings.TrimSpace(c.Param("postID")))
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *Handler) postsSyncLikeCounters(c *gin.Context) {
	if err := h.services.Post.SyncLikeCounters(c.Request.Context()); err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "like counters synced"))
}
