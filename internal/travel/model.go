package travel

import "strings"

// notAvailable is shown in place of empty display values.
const notAvailable = "N/A"

// StatusKey is the approval workflow state reported by the remote service.
type StatusKey string

const (
	// StatusPendingAtApprover1 means the request waits for the first approver (manager).
	StatusPendingAtApprover1 StatusKey = "pendingAtApprover1"
	// StatusPendingAtApprover2 means approver 1 signed off and the request waits for the HOD.
	StatusPendingAtApprover2 StatusKey = "pendingAtApprover2"
	// StatusApproved means both approvers signed off.
	StatusApproved StatusKey = "approved"
	// StatusRejected means one of the approvers denied the request.
	StatusRejected StatusKey = "rejected"
)

// ApproveStatus is the picklist value attached to a travel request.
type ApproveStatus struct {
	Key  StatusKey `json:"key"`
	Name string    `json:"name"`
}

// TravelRequest is a read-only snapshot of a travel request record.
//
//nolint:revive // TravelRequest is the canonical name used by the remote object definition.
type TravelRequest struct {
	ID            int64          `json:"id"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	TravelPurpose string         `json:"travelPurpose"`
	Manager       string         `json:"manager"`
	HOD           string         `json:"hod"`
	TravelBudget  Budget         `json:"travelBudget"`
	ApproveStatus *ApproveStatus `json:"approveStatus,omitempty"`
}

// Collection wraps the items array returned by the collection endpoint.
type Collection struct {
	Items []TravelRequest `json:"items"`
}

// StatusKey returns the approval key, or an empty key when the record has no status.
func (r TravelRequest) StatusKey() StatusKey {
	if r.ApproveStatus == nil {
		return ""
	}
	return r.ApproveStatus.Key
}

// StatusName returns the display name of the approval status.
func (r TravelRequest) StatusName() string {
	if r.ApproveStatus == nil {
		return notAvailable
	}
	return OrNA(r.ApproveStatus.Name)
}

// DisplayName renders "first last" with N/A for missing parts.
func (r TravelRequest) DisplayName() string {
	return OrNA(r.FirstName) + " " + OrNA(r.LastName)
}

// DisplayID renders the record number, or N/A for a zero id.
func (r TravelRequest) DisplayID() string {
	if r.ID == 0 {
		return notAvailable
	}
	return formatInt(r.ID)
}

// OwnedBy reports whether identity is one of the two approvers of the request.
// An empty identity owns nothing.
func (r TravelRequest) OwnedBy(identity string) bool {
	if identity == "" {
		return false
	}
	return r.Manager == identity || r.HOD == identity
}

// OrNA returns s, or "N/A" when s is blank.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
