package approval_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tourhr/internal/approval"
	approvalerrors "tourhr/internal/approval/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createChainFn     func(ctx context.Context, companyID string, req approval.CreateChainRequest) (approval.ChainResponse, error)
	getChainsFn       func(ctx context.Context, companyID, entityType string) ([]approval.ChainResponse, error)
	getChainFn        func(ctx context.Context, companyID, chainID string) (approval.ChainResponse, error)
	updateChainFn     func(ctx context.Context, companyID, chainID string, req approval.UpdateChainRequest) (approval.ChainResponse, error)
	deactivateChainFn func(ctx context.Context, companyID, chainID string) error
	submitRequestFn   func(ctx context.Context, companyID, requestorID string, req approval.SubmitRequestRequest) (approval.RequestResponse, error)
	recordActionFn    func(ctx context.Context, companyID, requestID, actorID string, req approval.ActionRequest) (approval.RequestResponse, error)
	cancelRequestFn   func(ctx context.Context, companyID, requestID, actorID string, req approval.CancelRequestRequest) (approval.RequestResponse, error)
	getRequestFn      func(ctx context.Context, companyID, requestID string) (approval.RequestResponse, error)
	listPendingFn     func(ctx context.Context, companyID, approverID string) ([]approval.RequestResponse, error)
}

func (f *fakeService) CreateChain(ctx context.Context, companyID string, req approval.CreateChainRequest) (approval.ChainResponse, error) {
	return f.createChainFn(ctx, companyID, req)
}
func (f *fakeService) GetChains(ctx context.Context, companyID, entityType string) ([]approval.ChainResponse, error) {
	return f.getChainsFn(ctx, companyID, entityType)
}
func (f *fakeService) GetChain(ctx context.Context, companyID, chainID string) (approval.ChainResponse, error) {
	return f.getChainFn(ctx, companyID, chainID)
}
func (f *fakeService) UpdateChain(ctx context.Context, companyID, chainID string, req approval.UpdateChainRequest) (approval.ChainResponse, error) {
	return f.updateChainFn(ctx, companyID, chainID, req)
}
func (f *fakeService) DeactivateChain(ctx context.Context, companyID, chainID string) error {
	return f.deactivateChainFn(ctx, companyID, chainID)
}
func (f *fakeService) SubmitRequest(ctx context.Context, companyID, requestorID string, req approval.SubmitRequestRequest) (approval.RequestResponse, error) {
	return f.submitRequestFn(ctx, companyID, requestorID, req)
}
func (f *fakeService) RecordAction(ctx context.Context, companyID, requestID, actorID string, req approval.ActionRequest) (approval.RequestResponse, error) {
	return f.recordActionFn(ctx, companyID, requestID, actorID, req)
}
func (f *fakeService) CancelRequest(ctx context.Context, companyID, requestID, actorID string, req approval.CancelRequestRequest) (approval.RequestResponse, error) {
	return f.cancelRequestFn(ctx, companyID, requestID, actorID, req)
}
func (f *fakeService) GetRequest(ctx context.Context, companyID, requestID string) (approval.RequestResponse, error) {
	return f.getRequestFn(ctx, companyID, requestID)
}
func (f *fakeService) ListPendingForApprover(ctx context.Context, companyID, approverID string) ([]approval.RequestResponse, error) {
	return f.listPendingFn(ctx, companyID, approverID)
}
func (f *fakeService) MaterializeSteps(ctx context.Context, companyID, requestorID string, entityType approval.EntityType, facts approval.EntityFacts) (approval.StepSnapshotList, string, error) {
	return nil, "", nil
}

func TestHandler_CreateChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()

	svc := &fakeService{
		createChainFn: func(ctx context.Context, cid string, req approval.CreateChainRequest) (approval.ChainResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, "Leave default", req.Name)
			assert.Len(t, req.Steps, 1)
			return approval.ChainResponse{ID: uuid.New().String(), Name: req.Name, IsActive: true}, nil
		},
	}

	h := approval.NewHandler(svc)

	body := `{
		"name": "Leave default",
		"entity_type": "LEAVE",
		"steps": [
			{"name": "Manager", "approver_type": "MANAGER"}
		]
	}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Request = httptest.NewRequest(http.MethodPost, "/approval-chains", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CreateChain(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Leave default")
}

func TestHandler_CreateChain_MissingSteps(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := approval.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/approval-chains", strings.NewReader(`{"name":"Leave default","entity_type":"LEAVE"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CreateChain(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SubmitAndRecordAction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	requestorID := uuid.New().String()
	approverID := uuid.New().String()
	requestID := uuid.New().String()

	svc := &fakeService{
		submitRequestFn: func(ctx context.Context, cid, rid string, req approval.SubmitRequestRequest) (approval.RequestResponse, error) {
			assert.Equal(t, requestorID, rid)
			assert.Equal(t, "EXPENSE", req.EntityType)
			assert.Equal(t, "1250.00", req.Amount)
			return approval.RequestResponse{ID: requestID, Status: string(approval.StatusPending)}, nil
		},
		recordActionFn: func(ctx context.Context, cid, id, aid string, req approval.ActionRequest) (approval.RequestResponse, error) {
			assert.Equal(t, requestID, id)
			assert.Equal(t, approverID, aid)
			assert.Equal(t, "APPROVED", req.Action)
			return approval.RequestResponse{ID: id, Status: string(approval.StatusApproved)}, nil
		},
	}

	h := approval.NewHandler(svc)

	body := `{
		"entity_type": "EXPENSE",
		"entity_id": "` + uuid.New().String() + `",
		"amount": "1250.00"
	}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Set("employee_id", requestorID)
	c.Request = httptest.NewRequest(http.MethodPost, "/approval-requests", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.SubmitRequest(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "PENDING")

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set("company_id", companyID)
	c2.Set("employee_id", approverID)
	c2.Params = gin.Params{{Key: "id", Value: requestID}}
	c2.Request = httptest.NewRequest(http.MethodPost, "/approval-requests/"+requestID+"/actions", strings.NewReader(`{"action":"APPROVED","comment":"ok"}`))
	c2.Request.Header.Set("Content-Type", "application/json")
	h.RecordAction(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "APPROVED")
}

func TestHandler_GetRequest_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getRequestFn: func(ctx context.Context, cid, id string) (approval.RequestResponse, error) {
			return approval.RequestResponse{}, approvalerrors.ErrRequestNotFound
		},
	}

	h := approval.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/approval-requests/x", nil)
	h.GetRequest(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CancelRequest_EmptyBodyAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	requestID := uuid.New().String()

	svc := &fakeService{
		cancelRequestFn: func(ctx context.Context, cid, id, aid string, req approval.CancelRequestRequest) (approval.RequestResponse, error) {
			return approval.RequestResponse{ID: id, Status: string(approval.StatusCancelled)}, nil
		},
	}

	h := approval.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: requestID}}
	c.Request = httptest.NewRequest(http.MethodPost, "/approval-requests/"+requestID+"/cancel", nil)
	h.CancelRequest(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CANCELLED")
}

func TestHandler_GetPending(t *testing.T) {
	gin.SetMode(gin.TestMode)
	approverID := uuid.New().String()

	svc := &fakeService{
		listPendingFn: func(ctx context.Context, cid, aid string) ([]approval.RequestResponse, error) {
			assert.Equal(t, approverID, aid)
			return []approval.RequestResponse{{ID: uuid.New().String(), Status: string(approval.StatusPending)}}, nil
		},
	}

	h := approval.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Set("employee_id", approverID)
	c.Request = httptest.NewRequest(http.MethodGet, "/approval-requests/pending", nil)
	h.GetPending(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
