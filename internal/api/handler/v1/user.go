package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"artgallery-api/internal/api/handler/v1/response"
	"artgallery-api/internal/domain"
	"artgallery-api/internal/service"
)

type UserHandler struct {
	svc   *service.UserService
	users UserGetter
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{
		svc:   svc,
		users: userGetterFunc{svc: svc},
	}
}

// HandleGetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /users/me [get]
func (h *UserHandler) HandleGetProfile(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleListUsers godoc
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Param        search   query      string false "match username, email or name"
// @Param        role     query      string false "filter by role"
// @Success      200      {object}   []domain.User
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /users [get]
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapListUsers) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	users, err := h.svc.ListUsers(ctx.Request.Context(), ctx.Query("search"), domain.Role(ctx.Query("role")))
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, users)
}
