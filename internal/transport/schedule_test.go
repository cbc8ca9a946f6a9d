package transport

import (
	"strings"
	"testing"
	"time"
)

func TestParseSchedule(t *testing.T) {
	in := "0 UP 1 2\n5 DOWN 1 2\n5 UP 2 3\n"
	events, err := ParseSchedule(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	want := []LinkEvent{
		{At: 0, Up: true, From: 1, To: 2},
		{At: 5 * time.Second, Up: false, From: 1, To: 2},
		{At: 5 * time.Second, Up: true, From: 2, To: 3},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestParseSchedule_RejectsOutOfOrder(t *testing.T) {
	_, err := ParseSchedule(strings.NewReader("5 UP 1 2\n0 UP 2 3\n"))
	if err == nil {
		t.Fatalf("expected an error for out-of-order schedule")
	}
}

func TestParseSchedule_RejectsMalformed(t *testing.T) {
	cases := []string{
		"not enough fields",
		"x UP 1 2",
		"0 SIDEWAYS 1 2",
		"0 UP x 2",
	}
	for _, c := range cases {
		if _, err := ParseSchedule(strings.NewReader(c)); err == nil {
			t.Errorf("line %q: expected an error", c)
		}
	}
}
