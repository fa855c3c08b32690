package handler

import (
	"net/http"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) followsCreate(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.FollowRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Follow.Follow(c.Request.Context(), userID, input.FirstName, input.LastName); err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "followed"))
}

func (h *Handler) followsDelete(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.UnfollowRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Follow.Unfollow(c.Request.Context(), userID, input.Username); err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "unfollowed"))
}

func (h *Handler) followsList(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	following, err := h.services.Follow.Following(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *Handler) feedGet(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	limit, _, err := limitAndSkip(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidLimit.Error()))
		return
	}

	feed, err := h.services.Feed.GetNewsFeed(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, feed)
}
