package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artgallery-api/internal/api/handler/v1/request"
	"artgallery-api/internal/api/handler/v1/response"
	"artgallery-api/internal/domain"
	"artgallery-api/internal/service"
)

type ArtPieceHandler struct {
	svc   *service.GalleryService
	users UserGetter
}

func NewArtPieceHandler(svc *service.GalleryService, users UserGetter) *ArtPieceHandler {
	return &ArtPieceHandler{
		svc:   svc,
		users: users,
	}
}

// HandleCreateArtPiece godoc
// @Summary      Create an art piece
// @Tags         artpieces
// @Produce      json
// @Param        request   body      request.ArtPieceRequest true "request body"
// @Success      201      {object}   domain.ArtPiece
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artpieces [post]
func (h *ArtPieceHandler) HandleCreateArtPiece(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapManageArtPieces) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	var req request.ArtPieceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	piece := domain.ArtPiece{
		Title:          req.Title,
		Description:    req.Description,
		ArtistID:       req.Artist,
		EstimatedValue: req.EstimatedValue,
		Status:         domain.ArtPieceStatus(req.Status),
	}
	if piece.Status == "" {
		piece.Status = domain.ArtPieceAvailable
	}

	created, err := h.svc.CreateArtPiece(ctx.Request.Context(), piece)
	if err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("artist", "ID", req.Artist))

			return
		}

		err = fmt.Errorf("v1.HandleCreateArtPiece -> h.svc.CreateArtPiece -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListArtPieces godoc
// @Summary      List art pieces
// @Tags         artpieces
// @Produce      json
// @Param        status   query      string false "filter by status"
// @Param        artist   query      int    false "filter by artist ID"
// @Param        search   query      string false "match title or description"
// @Success      200      {object}   []domain.ArtPiece
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artpieces [get]
func (h *ArtPieceHandler) HandleListArtPieces(ctx *gin.Context) {
	artistID, _ := strconv.ParseUint(ctx.Query("artist"), 10, 32)

	pieces, err := h.svc.ListArtPieces(ctx.Request.Context(),
		domain.ArtPieceStatus(ctx.Query("status")),
		uint(artistID),
		ctx.Query("search"),
	)
	if err != nil {
		err = fmt.Errorf("v1.HandleListArtPieces -> h.svc.ListArtPieces -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, pieces)
}

// HandleGetArtPiece godoc
// @Summary      Get an art piece by ID
// @Tags         artpieces
// @Produce      json
// @Param        id   path       int true "art piece ID"
// @Success      200      {object}   domain.ArtPiece
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artpieces/{id} [get]
func (h *ArtPieceHandler) HandleGetArtPiece(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	piece, err := h.svc.GetArtPiece(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrArtPieceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("art piece", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetArtPiece -> h.svc.GetArtPiece -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, piece)
}

// HandleUpdateArtPiece godoc
// @Summary      Update an art piece
// @Tags         artpieces
// @Produce      json
// @Param        id        path   int                     true "art piece ID"
// @Param        request   body   request.ArtPieceRequest true "request body"
// @Success      200      {object}   domain.ArtPiece
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artpieces/{id} [put]
func (h *ArtPieceHandler) HandleUpdateArtPiece(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapManageArtPieces) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ArtPieceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	piece, err := h.svc.UpdateArtPiece(ctx.Request.Context(), domain.ArtPiece{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		ArtistID:       req.Artist,
		EstimatedValue: req.EstimatedValue,
		Status:         domain.ArtPieceStatus(req.Status),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArtPieceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("art piece", "ID", id))
		case errors.Is(err, service.ErrArtistNotFound):
			response.RenderErr(ctx, response.ErrNotFound("artist", "ID", req.Artist))
		default:
			err = fmt.Errorf("v1.HandleUpdateArtPiece -> h.svc.UpdateArtPiece -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, piece)
}

// HandleDeleteArtPiece godoc
// @Summary      Delete an art piece
// @Tags         artpieces
// @Produce      json
// @Param        id   path       int true "art piece ID"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artpieces/{id} [delete]
func (h *ArtPieceHandler) HandleDeleteArtPiece(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapManageArtPieces) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteArtPiece(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrArtPieceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("art piece", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteArtPiece -> h.svc.DeleteArtPiece -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
