package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"artgallery-api/internal/api/handler/v1/response"
	"artgallery-api/internal/service"
)

type DashboardHandler struct {
	svc   *service.GalleryService
	users UserGetter
}

func NewDashboardHandler(svc *service.GalleryService, users UserGetter) *DashboardHandler {
	return &DashboardHandler{
		svc:   svc,
		users: users,
	}
}

// HandleDashboardStats godoc
// @Summary      Get dashboard statistics for the authenticated user's role
// @Description  Visitors get public gallery counters. Staff additionally get registration counters, admins get user counters.
// @Tags         dashboard
// @Produce      json
// @Success      200      {object}   map[string]int64
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerToken
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) HandleDashboardStats(ctx *gin.Context) {
	user, renderErr := getUserFromContext(ctx, h.users)
	if renderErr != nil {
		response.RenderErr(ctx, renderErr)

		return
	}

	stats, err := h.svc.DashboardStats(ctx.Request.Context(), user.Role)
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboardStats -> h.svc.DashboardStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}
