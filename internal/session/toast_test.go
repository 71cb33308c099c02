package session

import "testing"

func TestAddToast_Appends(t *testing.T) {
	s := New()
	s = Transition(s, AddToast{ID: "t1", Message: "first", Severity: SeveritySuccess})
	s = Transition(s, AddToast{ID: "t2", Message: "second", Severity: SeverityError})

	if len(s.Toasts) != 2 {
		t.Fatalf("len(Toasts) = %d, want 2", len(s.Toasts))
	}
	if s.Toasts[0].ID != "t1" || s.Toasts[1].ID != "t2" {
		t.Error("toasts should keep insertion order")
	}
}

func TestRemoveToast_Idempotent(t *testing.T) {
	s := New()
	s = Transition(s, AddToast{ID: "t1", Message: "hello", Severity: SeveritySuccess})

	once := Transition(s, RemoveToast{ID: "t1"})
	twice := Transition(once, RemoveToast{ID: "t1"})

	if len(once.Toasts) != 0 {
		t.Errorf("len(Toasts) = %d after first removal, want 0", len(once.Toasts))
	}
	if len(twice.Toasts) != len(once.Toasts) {
		t.Error("removing the same toast twice should equal removing it once")
	}
}

func TestSeverity_String(t *testing.T) {
	if SeveritySuccess.String() != "success" {
		t.Errorf("SeveritySuccess.String() = %q", SeveritySuccess.String())
	}
	if SeverityError.String() != "error" {
		t.Errorf("SeverityError.String() = %q", SeverityError.String())
	}
}
