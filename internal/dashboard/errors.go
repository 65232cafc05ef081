package dashboard

import "fmt"

// FetchKind names one of the dashboard's independent fetches.
type FetchKind int

const (
	FetchIdentity FetchKind = iota
	FetchCollection
	FetchDetail
)

func (k FetchKind) String() string {
	switch k {
	case FetchIdentity:
		return "identity"
	case FetchCollection:
		return "collection"
	case FetchDetail:
		return "detail"
	default:
		return fmt.Sprintf("FetchKind(%d)", int(k))
	}
}

// FetchError is a fetch failure the dashboard degraded around.
type FetchError struct {
	Kind  FetchKind
	Token Token
	Err   error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("%s fetch failed: %v", e.Kind, e.Err)
}

func (e FetchError) Unwrap() error {
	return e.Err
}

// ErrorSink observes fetch failures. The dashboard itself never surfaces them
// beyond LastErr.
type ErrorSink func(FetchError)
