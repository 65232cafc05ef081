package travel

import "fmt"

// Tab selects which approval states the dashboard lists.
type Tab string

const (
	// TabPending lists requests still waiting on either approver.
	TabPending Tab = "pending"
	// TabApproved lists requests the viewer has signed off.
	TabApproved Tab = "approved"
	// TabRejected lists requests the viewer denied.
	TabRejected Tab = "rejected"
)

// Tabs returns the dashboard tabs in display order.
func Tabs() []Tab {
	return []Tab{TabPending, TabApproved, TabRejected}
}

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q (valid: pending, approved, rejected)", s)
}

// Label returns the heading shown for the tab.
func (t Tab) Label() string {
	switch t {
	case TabPending:
		return "Waiting for My Approval"
	case TabApproved:
		return "Approved By Me"
	case TabRejected:
		return "Denied By Me"
	default:
		return string(t)
	}
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	return t.shift(1)
}

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab {
	return t.shift(-1)
}

func (t Tab) shift(delta int) Tab {
	tabs := Tabs()
	for i, candidate := range tabs {
		if candidate == t {
			return tabs[(i+delta+len(tabs))%len(tabs)]
		}
	}
	return TabPending
}

// Matches reports whether a status key belongs on this tab.
//
// A request pending at approver 2 has passed approver 1, so it is listed under
// both pending and approved.
func (t Tab) Matches(key StatusKey) bool {
	switch t {
	case TabPending:
		return key == StatusPendingAtApprover1 || key == StatusPendingAtApprover2
	case TabApproved:
		return key == StatusApproved || key == StatusPendingAtApprover2
	default:
		return string(key) == string(t)
	}
}
