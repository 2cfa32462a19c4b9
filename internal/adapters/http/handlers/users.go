package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/app"
)

// UserHandler serves the user endpoints.
type UserHandler struct {
	service *app.Service
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service *app.Service) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUser handles POST /api/v1/users.
//
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.CredentialsRequest true "Name and pin code"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "DUPLICATE_NAME"
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	user, err := h.service.NewUser(c.Request.Context(), req.ToCredentials())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Me handles POST /api/v1/users/me. Credentials travel in the body so they stay out of access logs.
//
// @Summary Look up the caller's user record
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.CredentialsRequest true "Name and pin code"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/me [post]
func (h *UserHandler) Me(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	user, err := h.service.GetMyUserData(c.Request.Context(), req.ToCredentials())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeleteUser handles DELETE /api/v1/users/:userId with the pin code in X-Pin-Code.
// Every quote the user wrote, and every comment on those quotes, goes with it.
//
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Param X-Pin-Code header string true "Pin code"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var req dto.DeleteUserRequest
	if err := dto.BindRequestAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	user, err := h.service.DeleteUser(c.Request.Context(), req.UserID, req.PinCode)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// RegisterRoutes mounts the user routes on rg.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", h.CreateUser)
	users.POST("/me", h.Me)
	users.DELETE("/:userId", h.DeleteUser)
}
