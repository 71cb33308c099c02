package session

// Severity classifies a toast notification.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Toast is an ephemeral notification. Each toast has a fixed visible
// lifetime managed by the controller; expiry and manual dismissal both
// converge on the same RemoveToast action.
type Toast struct {
	ID       string
	Message  string
	Severity Severity
}
