package approvalerrors

import (
	"net/http"

	"tourhr/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidChainID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid approval chain id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid approval request id",
		http.StatusBadRequest,
	)
	ErrInvalidEntityType = apperror.New(
		apperror.CodeInvalidInput,
		"unsupported entity type",
		http.StatusBadRequest,
	)
	ErrInvalidActionType = apperror.New(
		apperror.CodeInvalidInput,
		"unsupported action type",
		http.StatusBadRequest,
	)
	ErrNoSteps = apperror.New(
		apperror.CodeInvalidInput,
		"an approval chain needs at least one step",
		http.StatusBadRequest,
	)
	ErrInvalidStepOrder = apperror.New(
		apperror.CodeInvalidInput,
		"chain steps must be numbered 1..n without gaps",
		http.StatusBadRequest,
	)
	ErrInvalidAmountBand = apperror.New(
		apperror.CodeInvalidInput,
		"step min amount must not exceed max amount",
		http.StatusBadRequest,
	)
	ErrInvalidSkipCondition = apperror.New(
		apperror.CodeInvalidInput,
		"invalid skip condition",
		http.StatusBadRequest,
	)
	ErrApproverRequired = apperror.New(
		apperror.CodeInvalidInput,
		"step approver type requires an explicit approver",
		http.StatusBadRequest,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"this approval step requires a comment",
		http.StatusBadRequest,
	)
	ErrDelegateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a delegate action requires a delegate approver",
		http.StatusBadRequest,
	)
	ErrChainNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval chain not found",
		http.StatusNotFound,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval request not found",
		http.StatusNotFound,
	)
	ErrDuplicateDefault = apperror.New(
		apperror.CodeConflict,
		"a default chain already exists for this entity type",
		http.StatusConflict,
	)
	ErrNotCurrentApprover = apperror.New(
		apperror.CodeForbidden,
		"only the current step approver may act on this request",
		http.StatusForbidden,
	)
	ErrNotRequestor = apperror.New(
		apperror.CodeForbidden,
		"only the requestor may cancel this request",
		http.StatusForbidden,
	)
	ErrRequestClosed = apperror.New(
		apperror.CodeInvalidState,
		"approval request is already closed",
		http.StatusConflict,
	)
	ErrApproverUnresolved = apperror.New(
		apperror.CodeInvalidState,
		"could not resolve an approver for a chain step",
		http.StatusConflict,
	)
	ErrConcurrentAction = apperror.New(
		apperror.CodeConflict,
		"request was updated concurrently, retry the action",
		http.StatusConflict,
	)
)
