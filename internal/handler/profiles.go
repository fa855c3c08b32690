package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) profilesGetMy(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	profiles, err := h.services.Profile.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) profilesGetByID(c *gin.Context) {
	profileID, err := strconv.ParseInt(strings.TrimSpace(c.Param("profileID")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidProfileID.Error()))
		return
	}

	profile, err := h.services.Profile.FindByID(c.Request.Context(), profileID)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) profilesSearch(c *gin.Context) {
	criteria := make(map[string]string)
	for _, field := range []string{"username", "first_name", "last_name"} {
		if value := strings.TrimSpace(c.Query(field)); value != "" {
			criteria[field] = value
		}
	}
	if len(criteria) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, "at least one of username, first_name, last_name is required"))
		return
	}

	ids, err := h.services.Profile.Search(c.Request.Context(), c.DefaultQuery("op", "OR"), criteria)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

func (h *Handler) profilesChange(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.ChangeProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Profile.Change(c.Request.Context(), userID, input.ProfileID, input.Updates); err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "profile changed"))
}
