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

type RegistrationHandler struct {
	svc   *service.RegistrationService
	users UserGetter
}

func NewRegistrationHandler(svc *service.RegistrationService, users UserGetter) *RegistrationHandler {
	return &RegistrationHandler{
		svc:   svc,
		users: users,
	}
}

// HandleCreateRegistration godoc
// @Summary      Submit a registration for an exhibition
// @Description  The registration joins the exhibition's pending queue and waits for staff review.
// @Tags         registrations
// @Produce      json
// @Param        request   body      request.CreateRegistrationRequest true "request body"
// @Success      201      {object}   domain.Registration
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations [post]
func (h *RegistrationHandler) HandleCreateRegistration(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	var req request.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reg, err := h.svc.Submit(ctx.Request.Context(), user, req.Exhibition, req.AttendeesCount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExhibitionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("exhibition", "ID", req.Exhibition))
		case errors.Is(err, service.ErrExhibitionNotOpen),
			errors.Is(err, service.ErrDuplicateRegistration),
			errors.Is(err, service.ErrInvalidAttendees):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateRegistration -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, reg)
}

// HandleListRegistrations godoc
// @Summary      List registrations
// @Description  Staff see every registration. Visitors only see their own.
// @Tags         registrations
// @Produce      json
// @Param        exhibition   query   int    false "filter by exhibition ID"
// @Param        status       query   string false "filter by status"
// @Param        search       query   string false "match visitor name, email or exhibition title"
// @Success      200      {object}   []domain.Registration
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations [get]
func (h *RegistrationHandler) HandleListRegistrations(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	exhibitionID, _ := strconv.ParseUint(ctx.Query("exhibition"), 10, 32)

	regs, err := h.svc.ListForUser(ctx.Request.Context(), user,
		uint(exhibitionID),
		domain.RegistrationStatus(ctx.Query("status")),
		ctx.Query("search"),
	)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRegistrations -> h.svc.ListForUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, regs)
}

// HandleMyRegistrations godoc
// @Summary      List the authenticated visitor's registrations
// @Tags         registrations
// @Produce      json
// @Success      200      {object}   []domain.Registration
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations/my [get]
func (h *RegistrationHandler) HandleMyRegistrations(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	regs, err := h.svc.MyRegistrations(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleMyRegistrations -> h.svc.MyRegistrations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, regs)
}

// HandleQueueStatus godoc
// @Summary      Show the visitor's pending registrations and queue positions
// @Tags         registrations
// @Produce      json
// @Success      200      {object}   response.QueueStatusResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations/queue-status [get]
func (h *RegistrationHandler) HandleQueueStatus(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	entries, err := h.svc.QueueStatus(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleQueueStatus -> h.svc.QueueStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.QueueStatusResponse{
		PendingRegistrations: entries,
		TotalInQueue:         len(entries),
	})
}

// HandleListVisitors godoc
// @Summary      List visitor profiles
// @Description  Staff only. Visitor profiles are created on demand when a user first registers.
// @Tags         visitors
// @Produce      json
// @Param        search   query   string false "match visitor name or email"
// @Success      200      {object}   []domain.Visitor
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /visitors [get]
func (h *RegistrationHandler) HandleListVisitors(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapViewAllRegistrations) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	visitors, err := h.svc.ListVisitors(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListVisitors -> h.svc.ListVisitors -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, visitors)
}

// HandleGetRegistration godoc
// @Summary      Get a registration by ID
// @Tags         registrations
// @Produce      json
// @Param        id   path       int true "registration ID"
// @Success      200      {object}   domain.Registration
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations/{id} [get]
func (h *RegistrationHandler) HandleGetRegistration(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reg, err := h.svc.GetRegistration(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetRegistration -> h.svc.GetRegistration -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if !user.Role.Can(domain.CapViewAllRegistrations) && reg.VisitorEmail != user.Email {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	ctx.JSON(http.StatusOK, reg)
}

// HandleApproveRegistration godoc
// @Summary      Approve a pending registration
// @Tags         registrations
// @Produce      json
// @Param        id   path       int true "registration ID"
// @Success      200      {object}   response.ReviewResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations/{id}/approve [post]
func (h *RegistrationHandler) HandleApproveRegistration(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapReviewRegistrations) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reg, err := h.svc.Approve(ctx.Request.Context(), id, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))
		case errors.Is(err, service.ErrRegistrationNotPending):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleApproveRegistration -> h.svc.Approve -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.ReviewResponse{
		Message:        "registration approved",
		RegistrationID: reg.ID,
		Visitor:        reg.VisitorName,
		Exhibition:     reg.ExhibitionTitle,
	})
}

// HandleRejectRegistration godoc
// @Summary      Reject a pending registration
// @Tags         registrations
// @Produce      json
// @Param        id        path   int                                true  "registration ID"
// @Param        request   body   request.RejectRegistrationRequest  false "request body"
// @Success      200      {object}   response.ReviewResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations/{id}/reject [post]
func (h *RegistrationHandler) HandleRejectRegistration(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapReviewRegistrations) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.RejectRegistrationRequest
	// An absent body means a rejection without a stated reason.
	_ = ctx.ShouldBindJSON(&req)

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reg, err := h.svc.Reject(ctx.Request.Context(), id, user, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))
		case errors.Is(err, service.ErrRegistrationNotPending):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRejectRegistration -> h.svc.Reject -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.ReviewResponse{
		Message:        "registration rejected",
		RegistrationID: reg.ID,
		Visitor:        reg.VisitorName,
		Exhibition:     reg.ExhibitionTitle,
		Reason:         reg.RejectionReason,
	})
}

// HandleCancelRegistration godoc
// @Summary      Cancel a pending registration
// @Description  Visitors may cancel their own pending registrations. Approved registrations cannot be cancelled.
// @Tags         registrations
// @Produce      json
// @Param        id   path       int true "registration ID"
// @Success      200      {object}   domain.Registration
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations/{id}/cancel [post]
func (h *RegistrationHandler) HandleCancelRegistration(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reg, err := h.svc.Cancel(ctx.Request.Context(), id, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))
		case errors.Is(err, service.ErrCancelForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrRegistrationFinalized),
			errors.Is(err, service.ErrRegistrationNotPending):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCancelRegistration -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, reg)
}

// HandleUpdateRegistration godoc
// @Summary      Update a registration's status or attendee count
// @Tags         registrations
// @Produce      json
// @Param        id        path   int                               true "registration ID"
// @Param        request   body   request.UpdateRegistrationRequest true "request body"
// @Success      200      {object}   domain.Registration
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations/{id} [patch]
func (h *RegistrationHandler) HandleUpdateRegistration(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapReviewRegistrations) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reg, err := h.svc.UpdateRegistration(ctx.Request.Context(), id, domain.RegistrationStatus(req.Status), req.AttendeesCount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))
		case errors.Is(err, service.ErrInvalidAttendees):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateRegistration -> h.svc.UpdateRegistration -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, reg)
}

// HandleDeleteRegistration godoc
// @Summary      Delete a registration
// @Tags         registrations
// @Produce      json
// @Param        id   path       int true "registration ID"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /registrations/{id} [delete]
func (h *RegistrationHandler) HandleDeleteRegistration(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	if !user.Role.Can(domain.CapReviewRegistrations) {
		response.RenderErr(ctx, response.ErrPermissionDenied(errPermissionDenied))

		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteRegistration(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteRegistration -> h.svc.DeleteRegistration -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
