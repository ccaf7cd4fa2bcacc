package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nexushr/internal/attendance"
	attendanceerrors "nexushr/internal/attendance/errors"
	"nexushr/internal/scope"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn    func(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error)
	checkOutFn   func(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error)
	getTodayFn   func(ctx context.Context, employeeID string) (attendance.TodayResponse, error)
	getHistoryFn func(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error)
	getAllFn     func(ctx context.Context, viewer scope.Viewer) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, employeeID)
}
func (f *fakeService) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, employeeID)
}
func (f *fakeService) GetToday(ctx context.Context, employeeID string) (attendance.TodayResponse, error) {
	return f.getTodayFn(ctx, employeeID)
}
func (f *fakeService) GetHistory(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	return f.getHistoryFn(ctx, employeeID)
}
func (f *fakeService) GetAll(ctx context.Context, viewer scope.Viewer) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, viewer)
}

func TestHandler_CheckInAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string) (attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, eid)
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: eid, Status: attendance.StatusPresent}, nil
		},
		getAllFn: func(ctx context.Context, viewer scope.Viewer) ([]attendance.AttendanceResponse, error) {
			assert.True(t, viewer.All)
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", employeeID)
	c.Set("role", "employee")
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CheckIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), attendance.StatusPresent)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("user_id", uuid.New().String())
	c2.Set("role", "admin")
	c2.Request = httptest.NewRequest(http.MethodGet, "/attendances?page=1&page_size=1", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_CheckIn_AlreadyCheckedIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-in", nil)
	h.CheckIn(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CheckOut_NotCheckedIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkOutFn: func(ctx context.Context, eid string) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/check-out", nil)
	h.CheckOut(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetToday(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getTodayFn: func(ctx context.Context, eid string) (attendance.TodayResponse, error) {
			return attendance.TodayResponse{CheckedIn: true}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances/today", nil)
	h.GetToday(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"checked_in\":true")
}
