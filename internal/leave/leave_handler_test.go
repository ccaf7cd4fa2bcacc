package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nexushr/internal/leave"
	leaveerrors "nexushr/internal/leave/errors"
	"nexushr/internal/scope"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	applyFn  func(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	getAllFn func(ctx context.Context, viewer scope.Viewer) ([]leave.LeaveResponse, error)
	reviewFn func(ctx context.Context, id, reviewerID string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error)
}

func (f *fakeService) Apply(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, employeeID, req)
}
func (f *fakeService) GetAll(ctx context.Context, viewer scope.Viewer) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, viewer)
}
func (f *fakeService) Review(ctx context.Context, id, reviewerID string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	return f.reviewFn(ctx, id, reviewerID, req)
}

func TestHandler_ApplyAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		applyFn: func(ctx context.Context, eid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, "2025-06-10", req.StartDate)
			return leave.LeaveResponse{ID: uuid.New().String(), EmployeeID: eid, Status: leave.StatusPending}, nil
		},
		getAllFn: func(ctx context.Context, viewer scope.Viewer) ([]leave.LeaveResponse, error) {
			assert.False(t, viewer.All)
			assert.Equal(t, employeeID, viewer.EmployeeID)
			return []leave.LeaveResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", employeeID)
	c.Set("role", "employee")
	body := `{"start_date":"2025-06-10","end_date":"2025-06-12","reason":"family trip"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Apply(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), leave.StatusPending)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("user_id", employeeID)
	c2.Set("role", "employee")
	c2.Request = httptest.NewRequest(http.MethodGet, "/leaves?page=1&page_size=1", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_Apply_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"start_date":"2025-06-10"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Apply(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Apply_OverlapConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		applyFn: func(ctx context.Context, eid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.Overlapping(leave.StatusApproved, "2025-06-11", "2025-06-13")
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	body := `{"start_date":"2025-06-10","end_date":"2025-06-12","reason":"double booked"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Apply(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "conflicting_status")
	assert.Contains(t, w.Body.String(), "2025-06-11")
}

func TestHandler_Review(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reviewerID := uuid.New().String()
	leaveID := uuid.New().String()

	svc := &fakeService{
		reviewFn: func(ctx context.Context, id, rid string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, leaveID, id)
			assert.Equal(t, reviewerID, rid)
			assert.Equal(t, leave.StatusApproved, req.Status)
			return leave.LeaveResponse{ID: id, Status: req.Status}, nil
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", reviewerID)
	c.Set("role", "admin")
	c.Params = gin.Params{{Key: "id", Value: leaveID}}
	c.Request = httptest.NewRequest(http.MethodPut, "/leaves/"+leaveID+"/status", strings.NewReader(`{"status":"Approved"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Review(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), leave.StatusApproved)
}

func TestHandler_Review_AlreadyReviewed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		reviewFn: func(ctx context.Context, id, rid string, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
		},
	}
	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPut, "/leaves/x/status", strings.NewReader(`{"status":"Rejected"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Review(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
