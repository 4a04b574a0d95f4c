package leave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tourhr/internal/leave"
	leaveerrors "tourhr/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn        func(ctx context.Context, companyID, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn        func(ctx context.Context, companyID string, filter leave.ListFilter) ([]leave.LeaveResponse, error)
	getByIDFn       func(ctx context.Context, companyID, id string) (leave.LeaveResponse, error)
	getPendingFn    func(ctx context.Context, companyID, approverID string) ([]leave.LeaveResponse, error)
	processActionFn func(ctx context.Context, companyID, actorID, id string, req leave.LeaveActionRequest) (leave.LeaveResponse, error)
	cancelFn        func(ctx context.Context, companyID, actorID, id string, req leave.CancelLeaveRequest) (leave.LeaveResponse, error)
	revokeFn        func(ctx context.Context, companyID, actorID, id string, req leave.RevokeLeaveRequest) (leave.LeaveResponse, error)
}

func (f *fakeService) Create(ctx context.Context, companyID, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.createFn(ctx, companyID, actorID, req)
}
func (f *fakeService) GetAll(ctx context.Context, companyID string, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
	return f.getAllFn(ctx, companyID, filter)
}
func (f *fakeService) GetByID(ctx context.Context, companyID, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeService) GetPendingForApprover(ctx context.Context, companyID, approverID string) ([]leave.LeaveResponse, error) {
	return f.getPendingFn(ctx, companyID, approverID)
}
func (f *fakeService) ProcessAction(ctx context.Context, companyID, actorID, id string, req leave.LeaveActionRequest) (leave.LeaveResponse, error) {
	return f.processActionFn(ctx, companyID, actorID, id, req)
}
func (f *fakeService) Cancel(ctx context.Context, companyID, actorID, id string, req leave.CancelLeaveRequest) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, companyID, actorID, id, req)
}
func (f *fakeService) Revoke(ctx context.Context, companyID, actorID, id string, req leave.RevokeLeaveRequest) (leave.LeaveResponse, error) {
	return f.revokeFn(ctx, companyID, actorID, id, req)
}

func TestHandler_CreateAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakeService{
		createFn: func(ctx context.Context, cid, aid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, employeeID, aid)
			assert.Equal(t, "2030-06-10", req.StartDate)
			return leave.LeaveResponse{ID: uuid.New().String(), Status: leave.StatusPending}, nil
		},
		getAllFn: func(ctx context.Context, cid string, filter leave.ListFilter) ([]leave.LeaveResponse, error) {
			assert.Equal(t, "PENDING", filter.Status)
			return []leave.LeaveResponse{{ID: uuid.New().String()}}, nil
		},
	}

	h := leave.NewHandler(svc)

	body := `{
		"employee_id": "` + employeeID + `",
		"leave_type_id": "` + uuid.New().String() + `",
		"start_date": "2030-06-10",
		"end_date": "2030-06-12",
		"reason": "family visit"
	}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "PENDING")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("company_id", companyID)
	c2.Request = httptest.NewRequest(http.MethodGet, "/leaves?status=PENDING", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
}

func TestHandler_Create_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := leave.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"employee_id":"nope"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ProcessAction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	approverID := uuid.New().String()
	leaveID := uuid.New().String()

	svc := &fakeService{
		processActionFn: func(ctx context.Context, cid, aid, id string, req leave.LeaveActionRequest) (leave.LeaveResponse, error) {
			assert.Equal(t, approverID, aid)
			assert.Equal(t, leaveID, id)
			assert.Equal(t, "APPROVED", req.Action)
			return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Set("employee_id", approverID)
	c.Params = gin.Params{{Key: "id", Value: leaveID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/actions", strings.NewReader(`{"action":"APPROVED"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ProcessAction(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "APPROVED")
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getByIDFn: func(ctx context.Context, cid, id string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/x", nil)
	h.GetByID(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Cancel_EmptyBodyAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	leaveID := uuid.New().String()

	svc := &fakeService{
		cancelFn: func(ctx context.Context, cid, aid, id string, req leave.CancelLeaveRequest) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{ID: id, Status: leave.StatusCancelled}, nil
		},
	}

	h := leave.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", employeeID)
	c.Params = gin.Params{{Key: "id", Value: leaveID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/cancel", nil)
	h.Cancel(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CANCELLED")
}
