package errsink

import (
	"errors"
	"testing"
)

func TestSink_DrainPreservesOrderAndEmpties(t *testing.T) {
	s := New(nil)
	s.Record("E1", nil)
	s.Record("E2", errors.New("cause2"))
	s.Record("E3", nil)

	got := s.Drain()
	if len(got) != 3 {
		t.Fatalf("drained %d records, want 3", len(got))
	}
	for i, want := range []string{"E1", "E2", "E3"} {
		if got[i].Message != want {
			t.Fatalf("record[%d] = %q, want %q", i, got[i].Message, want)
		}
	}
	if got[1].Cause == nil || got[1].Cause.Error() != "cause2" {
		t.Fatalf("record[1].Cause = %v, want cause2", got[1].Cause)
	}

	if again := s.Drain(); len(again) != 0 {
		t.Fatalf("second drain returned %d records, want 0", len(again))
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d after drain, want 0", s.Len())
	}
}

func TestSink_RecordFiresAlertHook(t *testing.T) {
	alerts := 0
	s := New(func() { alerts++ })

	s.Record("boom", nil)
	s.Capture(errors.New("bang"))
	if alerts != 2 {
		t.Fatalf("alert fired %d times, want 2", alerts)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}

func TestSink_CaptureIgnoresNil(t *testing.T) {
	s := New(func() { t.Fatal("alert fired for nil error") })
	s.Capture(nil)
	if s.Len() != 0 {
		t.Fatalf("Len = %d, want 0", s.Len())
	}
}
