package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"artgallery-api/internal/api/handler/v1/response"
	"artgallery-api/internal/api/middleware"
	"artgallery-api/internal/domain"
	"artgallery-api/internal/service"
)

var errPermissionDenied = errors.New("you do not have permission to perform this action")

// UserGetter loads the authenticated user behind a request. Every
// protected handler resolves the full user so role checks run against
// the database, not the token.
type UserGetter interface {
	GetUser(ctx *gin.Context, id uint) (domain.User, error)
}

type userGetterFunc struct {
	svc *service.UserService
}

func (g userGetterFunc) GetUser(ctx *gin.Context, id uint) (domain.User, error) {
	return g.svc.GetUser(ctx.Request.Context(), id)
}

// NewUserGetter adapts the user service for the handlers that resolve
// the authenticated user themselves.
func NewUserGetter(svc *service.UserService) UserGetter {
	return userGetterFunc{svc: svc}
}

func getUserFromContext(ctx *gin.Context, users UserGetter) (domain.User, *response.Err) {
	raw, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized(errors.New("missing authentication"))
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errors.New("invalid authentication context"))
	}

	user, err := users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(service.ErrUserNotFound)
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("v1.getUserFromContext -> %w", err))
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %v %q", name, ctx.Param(name))
	}

	return uint(id), nil
}
