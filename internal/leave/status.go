package leave

import leaveerrors "github.com/anubhawdwd/hrms-be/internal/leave/errors"

type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCancelled RequestStatus = "CANCELLED"
)

type RequestAction string

const (
	ActionApprove  RequestAction = "approve"
	ActionReject   RequestAction = "reject"
	ActionCancel   RequestAction = "cancel"
	ActionHRCancel RequestAction = "hr_cancel"
)

type requestTransition struct {
	from RequestStatus
	to   RequestStatus
}

// requestTransitions is the only place leave request moves are defined.
var requestTransitions = map[RequestAction]requestTransition{
	ActionApprove:  {from: StatusPending, to: StatusApproved},
	ActionReject:   {from: StatusPending, to: StatusRejected},
	ActionCancel:   {from: StatusPending, to: StatusCancelled},
	ActionHRCancel: {from: StatusApproved, to: StatusCancelled},
}

// NextStatus returns the status reached by applying action to current.
func NextStatus(current RequestStatus, action RequestAction) (RequestStatus, error) {
	t, ok := requestTransitions[action]
	if !ok || t.from != current {
		return current, leaveerrors.ErrAlreadyProcessed
	}
	return t.to, nil
}

type EncashmentStatus string

const (
	EncashmentRequested EncashmentStatus = "REQUESTED"
	EncashmentApproved  EncashmentStatus = "APPROVED"
	EncashmentRejected  EncashmentStatus = "REJECTED"
)

var encashmentTransitions = map[RequestAction]struct {
	from EncashmentStatus
	to   EncashmentStatus
}{
	ActionApprove: {from: EncashmentRequested, to: EncashmentApproved},
	ActionReject:  {from: EncashmentRequested, to: EncashmentRejected},
}

func NextEncashmentStatus(current EncashmentStatus, action RequestAction) (EncashmentStatus, error) {
	t, ok := encashmentTransitions[action]
	if !ok || t.from != current {
		return current, leaveerrors.ErrAlreadyProcessed
	}
	return t.to, nil
}
