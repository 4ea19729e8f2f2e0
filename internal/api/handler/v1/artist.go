package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"artgallery-api/internal/api/handler/v1/request"
	"artgallery-api/internal/api/handler/v1/response"
	"artgallery-api/internal/domain"
	"artgallery-api/internal/service"
)

type ArtistHandler struct {
	svc   *service.GalleryService
	users UserGetter
}

func NewArtistHandler(svc *service.GalleryService, users UserGetter) *ArtistHandler {
	return &ArtistHandler{
		svc:   svc,
		users: users,
	}
}

// HandleCreateArtist godoc
// @Summary      Create an artist
// @Tags         artists
// @Produce      json
// @Param        request   body      request.ArtistRequest true "request body"
// @Success      201      {object}   domain.Artist
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artists [post]
func (h *ArtistHandler) HandleCreateArtist(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapManageArtists) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	var req request.ArtistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	artist, err := h.svc.CreateArtist(ctx.Request.Context(), domain.Artist{
		Name:        req.Name,
		Bio:         req.Bio,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateArtist -> h.svc.CreateArtist -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, artist)
}

// HandleListArtists godoc
// @Summary      List artists
// @Tags         artists
// @Produce      json
// @Param        search   query      string false "match name or bio"
// @Success      200      {object}   []domain.Artist
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artists [get]
func (h *ArtistHandler) HandleListArtists(ctx *gin.Context) {
	artists, err := h.svc.ListArtists(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListArtists -> h.svc.ListArtists -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, artists)
}

// HandleGetArtist godoc
// @Summary      Get an artist with their art pieces
// @Tags         artists
// @Produce      json
// @Param        id   path       int true "artist ID"
// @Success      200      {object}   response.ArtistDetailResponse
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artists/{id} [get]
func (h *ArtistHandler) HandleGetArtist(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	artist, pieces, err := h.svc.GetArtistDetail(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("artist", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetArtist -> h.svc.GetArtistDetail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ArtistDetailResponse{
		Artist:    artist,
		ArtPieces: pieces,
	})
}

// HandleUpdateArtist godoc
// @Summary      Update an artist
// @Tags         artists
// @Produce      json
// @Param        id        path   int                   true "artist ID"
// @Param        request   body   request.ArtistRequest true "request body"
// @Success      200      {object}   domain.Artist
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artists/{id} [put]
func (h *ArtistHandler) HandleUpdateArtist(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapManageArtists) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ArtistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	artist, err := h.svc.UpdateArtist(ctx.Request.Context(), domain.Artist{
		ID:          id,
		Name:        req.Name,
		Bio:         req.Bio,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("artist", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateArtist -> h.svc.UpdateArtist -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, artist)
}

// HandleDeleteArtist godoc
// @Summary      Delete an artist
// @Tags         artists
// @Produce      json
// @Param        id   path       int true "artist ID"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /artists/{id} [delete]
func (h *ArtistHandler) HandleDeleteArtist(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapManageArtists) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteArtist(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("artist", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteArtist -> h.svc.DeleteArtist -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
