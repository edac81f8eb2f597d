package component

import (
	"context"
	"errors"
	"testing"

	"github.com/nalxnet/openWB/internal/fault"
	"github.com/rs/zerolog"
)

type recordingSetter struct {
	values map[string]any
	err    error
}

func (s *recordingSetter) Set(_ context.Context, key string, value any) error {
	if s.values == nil {
		s.values = map[string]any{}
	}
	s.values[key] = value
	return s.err
}

func TestUpdateSuccess(t *testing.T) {
	set := &recordingSetter{}
	r := NewReporter(set, zerolog.Nop())
	info := Info{ID: 1, Name: "SolarEdge", Type: "pv"}

	if err := r.Update(context.Background(), info, func(context.Context) error { return nil }); err != nil {
		t.Fatalf("err=%v", err)
	}
	if set.values["openWB/set/pv/1/get/fault_str"] != NoError {
		t.Fatalf("fault_str = %v", set.values["openWB/set/pv/1/get/fault_str"])
	}
	if set.values["openWB/set/pv/1/get/fault_state"] != fault.StateOK {
		t.Fatalf("fault_state = %v", set.values["openWB/set/pv/1/get/fault_state"])
	}
	if !r.Healthy() {
		t.Fatalf("expected healthy")
	}
}

func TestUpdateReportsFaultKinds(t *testing.T) {
	cases := []struct {
		err   error
		state int
		str   string
	}{
		{&fault.Fault{Kind: fault.ProtocolFailure, Message: "register 40380 failed"}, fault.StateWarning, "register 40380 failed"},
		{&fault.Fault{Kind: fault.ConnectionFailure, Message: "no connection"}, fault.StateError, "no connection"},
		{errors.New("http 500"), fault.StateError, "http 500"},
	}
	for _, c := range cases {
		set := &recordingSetter{}
		r := NewReporter(set, zerolog.Nop())
		info := Info{ID: 2, Name: "meter", Type: "pv"}

		err := r.Update(context.Background(), info, func(context.Context) error { return c.err })
		if !errors.Is(err, c.err) {
			t.Fatalf("update error %v does not wrap %v", err, c.err)
		}
		if got := set.values[info.Topic("fault_state")]; got != c.state {
			t.Fatalf("%v: fault_state = %v, want %d", c.err, got, c.state)
		}
		if got := set.values[info.Topic("fault_str")]; got != c.str {
			t.Fatalf("%v: fault_str = %v, want %q", c.err, got, c.str)
		}
	}
}

func TestStatusesSortedAndHealth(t *testing.T) {
	r := NewReporter(&recordingSetter{}, zerolog.Nop())
	ctx := context.Background()

	_ = r.Update(ctx, Info{ID: 3, Type: "vehicle"}, func(context.Context) error { return nil })
	_ = r.Update(ctx, Info{ID: 2, Type: "pv"}, func(context.Context) error {
		return &fault.Fault{Kind: fault.ConnectionFailure, Message: "down"}
	})
	_ = r.Update(ctx, Info{ID: 1, Type: "pv"}, func(context.Context) error { return nil })

	st := r.Statuses()
	if len(st) != 3 {
		t.Fatalf("got %d statuses", len(st))
	}
	if st[0].ID != 1 || st[1].ID != 2 || st[2].Type != "vehicle" {
		t.Fatalf("unexpected order: %+v", st)
	}
	if r.Healthy() {
		t.Fatalf("expected unhealthy with a connection failure")
	}
}

func TestPublishErrorIsReturned(t *testing.T) {
	r := NewReporter(&recordingSetter{err: errors.New("broker down")}, zerolog.Nop())
	err := r.Update(context.Background(), Info{ID: 1, Type: "pv"}, func(context.Context) error { return nil })
	if err == nil {
		t.Fatalf("expected publish error")
	}
}
