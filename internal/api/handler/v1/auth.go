package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artgallery-api/internal/api/handler/v1/request"
	"artgallery-api/internal/api/handler/v1/response"
	"artgallery-api/internal/config"
	"artgallery-api/internal/domain"
	"artgallery-api/internal/pkg/jwthelper"
	"artgallery-api/internal/service"
)

type AuthService interface {
	Signup(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	IssueRefreshToken(ctx context.Context, userID uint) (string, error)
	Refresh(ctx context.Context, rawToken string) (domain.User, string, error)
	Logout(ctx context.Context, rawToken string) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

func (h *AuthHandler) accessTokenTTL() time.Duration {
	return time.Duration(h.conf.AccessTokenTTLMins) * time.Minute
}

func (h *AuthHandler) issueTokenPair(ctx *gin.Context, user domain.User) (response.TokenPairResponse, *response.Err) {
	access, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, string(user.Role), h.accessTokenTTL())
	if err != nil {
		err = fmt.Errorf("jwthelper.GenerateToken -> %w", err)
		return response.TokenPairResponse{}, response.ErrInternalServerError(err)
	}

	refresh, err := h.svc.IssueRefreshToken(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("h.svc.IssueRefreshToken -> %w", err)
		return response.TokenPairResponse{}, response.ErrInternalServerError(err)
	}

	return response.TokenPairResponse{
		Access:  access,
		Refresh: refresh,
		User:    user,
	}, nil
}

// HandleSignup godoc
// @Summary      Signup a new visitor account
// @Tags         auth
// @Produce      json
// @Param        request   body      request.SignupRequest true "request body"
// @Success      201      {object}   response.TokenPairResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Signup(ctx.Request.Context(), domain.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserEmailExists) || errors.Is(err, service.ErrUsernameExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleSignup -> h.svc.Signup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	pair, renderErr := h.issueTokenPair(ctx, user)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	ctx.JSON(http.StatusCreated, pair)
}

// HandleLogin godoc
// @Summary      Login with email and password
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.TokenPairResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	pair, renderErr := h.issueTokenPair(ctx, user)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	ctx.JSON(http.StatusOK, pair)
}

// HandleRefresh godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Produce      json
// @Param        request   body      request.RefreshRequest true "request body"
// @Success      200      {object}   response.RefreshResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/refresh [post]
func (h *AuthHandler) HandleRefresh(ctx *gin.Context) {
	req := request.RefreshRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, refresh, err := h.svc.Refresh(ctx.Request.Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, service.ErrRefreshTokenInvalid) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		err = fmt.Errorf("v1.HandleRefresh -> h.svc.Refresh -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	access, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, string(user.Role), h.accessTokenTTL())
	if err != nil {
		err = fmt.Errorf("v1.HandleRefresh -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.RefreshResponse{
		Access:  access,
		Refresh: refresh,
	})
}

// HandleLogout godoc
// @Summary      Logout and revoke the refresh token
// @Tags         auth
// @Produce      json
// @Param        request   body      request.LogoutRequest false "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      500      {object}   response.Err
// @Router       /auth/logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	req := request.LogoutRequest{}
	// The body is optional; a bare logout is still a successful logout.
	_ = ctx.ShouldBindJSON(&req)

	if req.Refresh != "" {
		if err := h.svc.Logout(ctx.Request.Context(), req.Refresh); err != nil {
			err = fmt.Errorf("v1.HandleLogout -> h.svc.Logout -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Detail: "successfully logged out"})
}
