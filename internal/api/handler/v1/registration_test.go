package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artgallery-api/internal/api/middleware"
	"artgallery-api/internal/domain"
	"artgallery-api/internal/repository"
	"artgallery-api/internal/service"
)

type stubUsers struct {
	users map[uint]domain.User
}

func (s *stubUsers) GetUser(_ *gin.Context, id uint) (domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return domain.User{}, service.ErrUserNotFound
}

type stubRegistrationRepo struct {
	visitors      map[string]domain.Visitor
	registrations map[uint]domain.Registration
	nextID        uint
}

func newStubRegistrationRepo() *stubRegistrationRepo {
	return &stubRegistrationRepo{
		visitors:      map[string]domain.Visitor{},
		registrations: map[uint]domain.Registration{},
		nextID:        1,
	}
}

func (s *stubRegistrationRepo) GetOrCreateVisitor(_ context.Context, visitor domain.Visitor) (domain.Visitor, error) {
	if v, ok := s.visitors[visitor.Email]; ok {
		return v, nil
	}
	visitor.ID = s.nextID
	s.nextID++
	s.visitors[visitor.Email] = visitor
	return visitor, nil
}

func (s *stubRegistrationRepo) FindVisitorByEmail(_ context.Context, email string) (domain.Visitor, error) {
	if v, ok := s.visitors[email]; ok {
		return v, nil
	}
	return domain.Visitor{}, repository.ErrVisitorNotFound
}

func (s *stubRegistrationRepo) ListVisitors(_ context.Context, search string) ([]domain.Visitor, error) {
	var out []domain.Visitor
	for _, v := range s.visitors {
		if search != "" && !strings.Contains(strings.ToLower(v.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(v.Email), strings.ToLower(search)) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *stubRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	for _, r := range s.registrations {
		if r.VisitorID == registration.VisitorID && r.ExhibitionID == registration.ExhibitionID && r.Status.Active() {
			return domain.Registration{}, repository.ErrDuplicateRegistration
		}
	}
	position := 1
	registration.ID = s.nextID
	s.nextID++
	registration.Status = domain.RegistrationPending
	registration.QueuePosition = &position
	registration.SubmittedAt = time.Now()
	s.registrations[registration.ID] = registration
	return registration, nil
}

func (s *stubRegistrationRepo) GetByID(_ context.Context, id uint) (domain.Registration, error) {
	if r, ok := s.registrations[id]; ok {
		return r, nil
	}
	return domain.Registration{}, repository.ErrRegistrationNotFound
}

func (s *stubRegistrationRepo) List(_ context.Context, visitorID, _ uint, _ domain.RegistrationStatus, _ string) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, r := range s.registrations {
		if visitorID == 0 || r.VisitorID == visitorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRegistrationRepo) FindPendingByVisitor(_ context.Context, visitorID uint) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, r := range s.registrations {
		if r.VisitorID == visitorID && r.Status == domain.RegistrationPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubRegistrationRepo) Approve(_ context.Context, id, reviewerID uint) (domain.Registration, error) {
	r, ok := s.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	if r.Status != domain.RegistrationPending {
		return domain.Registration{}, repository.ErrRegistrationNotPending
	}
	r.Status = domain.RegistrationApproved
	r.Confirmed = true
	r.ReviewedByID = &reviewerID
	s.registrations[id] = r
	return r, nil
}

func (s *stubRegistrationRepo) Reject(_ context.Context, id, reviewerID uint, reason string) (domain.Registration, error) {
	r, ok := s.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	if r.Status != domain.RegistrationPending {
		return domain.Registration{}, repository.ErrRegistrationNotPending
	}
	r.Status = domain.RegistrationRejected
	r.RejectionReason = reason
	r.ReviewedByID = &reviewerID
	s.registrations[id] = r
	return r, nil
}

func (s *stubRegistrationRepo) Cancel(_ context.Context, id uint) (domain.Registration, error) {
	r, ok := s.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	if r.Status == domain.RegistrationApproved {
		return domain.Registration{}, repository.ErrRegistrationFinalized
	}
	r.Status = domain.RegistrationCancelled
	s.registrations[id] = r
	return r, nil
}

func (s *stubRegistrationRepo) Update(_ context.Context, id uint, _ map[string]any) (domain.Registration, error) {
	if r, ok := s.registrations[id]; ok {
		return r, nil
	}
	return domain.Registration{}, repository.ErrRegistrationNotFound
}

func (s *stubRegistrationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := s.registrations[id]; !ok {
		return repository.ErrRegistrationNotFound
	}
	delete(s.registrations, id)
	return nil
}

type stubExhibitions struct {
	exhibitions map[uint]domain.Exhibition
}

func (s *stubExhibitions) GetExhibition(_ context.Context, id uint) (domain.Exhibition, error) {
	if e, ok := s.exhibitions[id]; ok {
		return e, nil
	}
	return domain.Exhibition{}, repository.ErrExhibitionNotFound
}

func setUserID(id uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, id)
		ctx.Next()
	}
}

func newRegistrationRouter(t *testing.T, actorID uint) (*gin.Engine, *stubRegistrationRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &stubUsers{users: map[uint]domain.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com", Role: domain.RoleVisitor},
		2: {ID: 2, Username: "clerk", Email: "clerk@example.com", Role: domain.RoleClerk},
	}}
	repo := newStubRegistrationRepo()
	gallery := &stubExhibitions{exhibitions: map[uint]domain.Exhibition{
		42: {ID: 42, Title: "Modern Masters", Status: domain.ExhibitionUpcoming},
		43: {ID: 43, Title: "Closed Show", Status: domain.ExhibitionCompleted},
	}}
	handler := NewRegistrationHandler(service.NewRegistrationService(repo, gallery), users)

	router := gin.New()
	group := router.Group("/api/v1", setUserID(actorID))
	group.POST("/registrations", handler.HandleCreateRegistration)
	group.GET("/registrations", handler.HandleListRegistrations)
	group.GET("/registrations/queue-status", handler.HandleQueueStatus)
	group.POST("/registrations/:id/approve", handler.HandleApproveRegistration)
	group.POST("/registrations/:id/cancel", handler.HandleCancelRegistration)
	group.GET("/visitors", handler.HandleListVisitors)

	return router, repo
}

func TestHandleCreateRegistration(t *testing.T) {
	router, _ := newRegistrationRouter(t, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations",
		strings.NewReader(`{"exhibition": 42, "attendees_count": 3}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
	assert.Contains(t, w.Body.String(), `"queue_position":1`)
}

func TestHandleCreateRegistration_InvalidBody(t *testing.T) {
	router, _ := newRegistrationRouter(t, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations",
		strings.NewReader(`{"exhibition": 42, "attendees_count": 0}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateRegistration_ClosedExhibition(t *testing.T) {
	router, _ := newRegistrationRouter(t, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations",
		strings.NewReader(`{"exhibition": 43, "attendees_count": 2}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateRegistration_UnknownExhibition(t *testing.T) {
	router, _ := newRegistrationRouter(t, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations",
		strings.NewReader(`{"exhibition": 99, "attendees_count": 2}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleCreateRegistration_Duplicate(t *testing.T) {
	router, _ := newRegistrationRouter(t, 1)
	body := `{"exhibition": 42, "attendees_count": 2}`

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/registrations", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/registrations", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleApproveRegistration_VisitorForbidden(t *testing.T) {
	router, repo := newRegistrationRouter(t, 1)
	repo.registrations[7] = domain.Registration{ID: 7, Status: domain.RegistrationPending}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/registrations/7/approve", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleApproveRegistration_Clerk(t *testing.T) {
	router, repo := newRegistrationRouter(t, 2)
	repo.registrations[7] = domain.Registration{ID: 7, VisitorName: "Alice", ExhibitionTitle: "Modern Masters", Status: domain.RegistrationPending}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/registrations/7/approve", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "registration approved")

	// A second approval is rejected.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/registrations/7/approve", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCancelRegistration_ApprovedRefused(t *testing.T) {
	router, repo := newRegistrationRouter(t, 1)
	repo.registrations[7] = domain.Registration{ID: 7, VisitorEmail: "alice@example.com", Status: domain.RegistrationApproved}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/registrations/7/cancel", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleQueueStatus_Empty(t *testing.T) {
	router, _ := newRegistrationRouter(t, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/registrations/queue-status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_in_queue":0`)
}

func TestHandleListVisitors_Clerk(t *testing.T) {
	router, repo := newRegistrationRouter(t, 2)
	repo.visitors["alice@example.com"] = domain.Visitor{ID: 1, Name: "Alice", Email: "alice@example.com"}
	repo.visitors["bob@example.com"] = domain.Visitor{ID: 2, Name: "Bob", Email: "bob@example.com"}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/visitors?search=bob", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"bob@example.com"`)
	assert.NotContains(t, w.Body.String(), "alice@example.com")
}

func TestHandleListVisitors_VisitorForbidden(t *testing.T) {
	router, _ := newRegistrationRouter(t, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/visitors", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleListRegistrations_MissingAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	users := &stubUsers{users: map[uint]domain.User{}}
	handler := NewRegistrationHandler(service.NewRegistrationService(newStubRegistrationRepo(), &stubExhibitions{}), users)

	router := gin.New()
	router.GET("/api/v1/registrations", handler.HandleListRegistrations)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/registrations", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
