package handler

import (
	"net/http"
	"strings"

	"github.com/TopJodel/topjodel-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authRegister(c *gin.Context) {
	var input dto.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	userID, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user_id": userID})
}

func (h *Handler) authLogin(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	resp, err := h.services.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) authLogout(c *gin.Context) {
	token, _ := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")

	revoked, err := h.services.Auth.Logout(c.Request.Context(), token)
	if err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}
	if !revoked {
		c.JSON(http.StatusOK, dto.NewBasicResponse(false, "no active session found for this token"))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "logged out"))
}

func (h *Handler) authChangeCredentials(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.ChangeCredentialsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Auth.ChangeCredentials(c.Request.Context(), userID, input); err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "credentials changed"))
}

func (h *Handler) authDeleteUser(c *gin.Context) {
	userID, ok := h.getUserIDFromRequest(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	var input dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Auth.DeleteUser(c.Request.Context(), userID, input); err != nil {
		c.JSON(statusFor(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "user deleted"))
}
