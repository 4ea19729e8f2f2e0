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

type ExhibitionHandler struct {
	svc   *service.GalleryService
	users UserGetter
}

func NewExhibitionHandler(svc *service.GalleryService, users UserGetter) *ExhibitionHandler {
	return &ExhibitionHandler{
		svc:   svc,
		users: users,
	}
}

func (h *ExhibitionHandler) requireCapability(ctx *gin.Context, cap domain.Capability) (domain.User, bool) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return domain.User{}, false
	}

	if !user.Role.Can(cap) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return domain.User{}, false
	}

	return user, true
}

// HandleCreateExhibition godoc
// @Summary      Create an exhibition
// @Tags         exhibitions
// @Produce      json
// @Param        request   body      request.ExhibitionRequest true "request body"
// @Success      201      {object}   domain.Exhibition
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions [post]
func (h *ExhibitionHandler) HandleCreateExhibition(ctx *gin.Context) {
	if _, ok := h.requireCapability(ctx, domain.CapManageExhibitions); !ok {
		return
	}

	var req request.ExhibitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	start, end := req.Dates()
	exhibition := domain.Exhibition{
		Title:     req.Title,
		StartDate: start,
		EndDate:   end,
		Status:    domain.ExhibitionStatus(req.Status),
	}
	if exhibition.Status == "" {
		exhibition.Status = domain.ExhibitionUpcoming
	}

	created, err := h.svc.CreateExhibition(ctx.Request.Context(), exhibition)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateExhibition -> h.svc.CreateExhibition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListExhibitions godoc
// @Summary      List exhibitions
// @Tags         exhibitions
// @Produce      json
// @Param        status   query      string false "filter by status"
// @Param        search   query      string false "match title"
// @Success      200      {object}   []domain.Exhibition
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions [get]
func (h *ExhibitionHandler) HandleListExhibitions(ctx *gin.Context) {
	exhibitions, err := h.svc.ListExhibitions(ctx.Request.Context(),
		domain.ExhibitionStatus(ctx.Query("status")),
		ctx.Query("search"),
	)
	if err != nil {
		err = fmt.Errorf("v1.HandleListExhibitions -> h.svc.ListExhibitions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, exhibitions)
}

// HandleGetExhibition godoc
// @Summary      Get an exhibition with its art pieces and registration counters
// @Tags         exhibitions
// @Produce      json
// @Param        id   path       int true "exhibition ID"
// @Success      200      {object}   domain.ExhibitionDetail
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions/{id} [get]
func (h *ExhibitionHandler) HandleGetExhibition(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	detail, err := h.svc.GetExhibitionDetail(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExhibitionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("exhibition", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetExhibition -> h.svc.GetExhibitionDetail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleUpdateExhibition godoc
// @Summary      Update an exhibition
// @Tags         exhibitions
// @Produce      json
// @Param        id        path   int                       true "exhibition ID"
// @Param        request   body   request.ExhibitionRequest true "request body"
// @Success      200      {object}   domain.Exhibition
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions/{id} [put]
func (h *ExhibitionHandler) HandleUpdateExhibition(ctx *gin.Context) {
	if _, ok := h.requireCapability(ctx, domain.CapManageExhibitions); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.ExhibitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	start, end := req.Dates()
	exhibition, err := h.svc.UpdateExhibition(ctx.Request.Context(), domain.Exhibition{
		ID:        id,
		Title:     req.Title,
		StartDate: start,
		EndDate:   end,
		Status:    domain.ExhibitionStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, service.ErrExhibitionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("exhibition", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateExhibition -> h.svc.UpdateExhibition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, exhibition)
}

// HandleDeleteExhibition godoc
// @Summary      Delete an exhibition and its registrations
// @Tags         exhibitions
// @Produce      json
// @Param        id   path       int true "exhibition ID"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions/{id} [delete]
func (h *ExhibitionHandler) HandleDeleteExhibition(ctx *gin.Context) {
	if _, ok := h.requireCapability(ctx, domain.CapManageExhibitions); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteExhibition(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrExhibitionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("exhibition", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteExhibition -> h.svc.DeleteExhibition -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAssignArtPiece godoc
// @Summary      Assign an art piece to an exhibition
// @Tags         exhibitions
// @Produce      json
// @Param        id        path   int                          true "exhibition ID"
// @Param        request   body   request.AssignArtPieceRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions/{id}/artpieces [post]
func (h *ExhibitionHandler) HandleAssignArtPiece(ctx *gin.Context) {
	if _, ok := h.requireCapability(ctx, domain.CapManageExhibitions); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AssignArtPieceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.AssignArtPiece(ctx.Request.Context(), id, req.ArtPiece); err != nil {
		switch {
		case errors.Is(err, service.ErrExhibitionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("exhibition", "ID", id))
		case errors.Is(err, service.ErrArtPieceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("art piece", "ID", req.ArtPiece))
		default:
			err = fmt.Errorf("v1.HandleAssignArtPiece -> h.svc.AssignArtPiece -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Detail: "art piece assigned"})
}

// HandleUnassignArtPiece godoc
// @Summary      Remove an art piece from an exhibition
// @Tags         exhibitions
// @Produce      json
// @Param        id          path   int true "exhibition ID"
// @Param        artpieceID  path   int true "art piece ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions/{id}/artpieces/{artpieceID} [delete]
func (h *ExhibitionHandler) HandleUnassignArtPiece(ctx *gin.Context) {
	if _, ok := h.requireCapability(ctx, domain.CapManageExhibitions); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	pieceID, err := parseIDParam(ctx, "artpieceID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.UnassignArtPiece(ctx.Request.Context(), id, pieceID); err != nil {
		switch {
		case errors.Is(err, service.ErrExhibitionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("exhibition", "ID", id))
		case errors.Is(err, service.ErrArtPieceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("art piece", "ID", pieceID))
		default:
			err = fmt.Errorf("v1.HandleUnassignArtPiece -> h.svc.UnassignArtPiece -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Detail: "art piece removed"})
}

// HandleConfirmSetup godoc
// @Summary      Confirm an exhibition's setup
// @Description  Marks assigned art pieces DISPLAYED and opens the exhibition. Requires at least one assigned art piece.
// @Tags         exhibitions
// @Produce      json
// @Param        id   path       int true "exhibition ID"
// @Success      200      {object}   domain.SetupStatus
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions/{id}/confirm-setup [post]
func (h *ExhibitionHandler) HandleConfirmSetup(ctx *gin.Context) {
	user, ok := h.requireCapability(ctx, domain.CapConfirmSetup)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	status, err := h.svc.ConfirmSetup(ctx.Request.Context(), id, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExhibitionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("exhibition", "ID", id))
		case errors.Is(err, service.ErrSetupAlreadyConfirmed):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrExhibitionNotUpcoming),
			errors.Is(err, service.ErrNoArtPiecesAssigned):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleConfirmSetup -> h.svc.ConfirmSetup -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, status)
}

// HandleConfirmTeardown godoc
// @Summary      Confirm an exhibition's teardown
// @Description  Returns art pieces to AVAILABLE and completes the exhibition. Setup must have been confirmed first.
// @Tags         exhibitions
// @Produce      json
// @Param        id   path       int true "exhibition ID"
// @Success      200      {object}   domain.SetupStatus
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions/{id}/confirm-teardown [post]
func (h *ExhibitionHandler) HandleConfirmTeardown(ctx *gin.Context) {
	user, ok := h.requireCapability(ctx, domain.CapConfirmSetup)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	status, err := h.svc.ConfirmTeardown(ctx.Request.Context(), id, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExhibitionNotFound),
			errors.Is(err, service.ErrSetupStatusNotFound):
			response.RenderErr(ctx, response.ErrNotFound("exhibition", "ID", id))
		case errors.Is(err, service.ErrTeardownAlreadyConfirmed):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, service.ErrSetupNotConfirmed):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleConfirmTeardown -> h.svc.ConfirmTeardown -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, status)
}

// HandleGetSetupStatus godoc
// @Summary      Get an exhibition's setup status
// @Tags         exhibitions
// @Produce      json
// @Param        id   path       int true "exhibition ID"
// @Success      200      {object}   domain.SetupStatus
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /exhibitions/{id}/setup-status [get]
func (h *ExhibitionHandler) HandleGetSetupStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	status, err := h.svc.GetSetupStatus(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSetupStatusNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("setup status", "exhibition ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetSetupStatus -> h.svc.GetSetupStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, status)
}

// HandleListSetupStatuses godoc
// @Summary      List setup statuses across exhibitions
// @Tags         exhibitions
// @Produce      json
// @Success      200      {object}   []domain.SetupStatus
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /setupstatuses [get]
func (h *ExhibitionHandler) HandleListSetupStatuses(ctx *gin.Context) {
	if _, ok := h.requireCapability(ctx, domain.CapConfirmSetup); !ok {
		return
	}

	statuses, err := h.svc.ListSetupStatuses(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSetupStatuses -> h.svc.ListSetupStatuses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, statuses)
}
