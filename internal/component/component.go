// Package component runs component updates and reports their fault state.
package component

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nalxnet/openWB/internal/fault"
	"github.com/rs/zerolog"
)

const NoError = "No error."

type Info struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// Type is the openWB topic segment, "pv" or "vehicle".
	Type string `json:"type"`
}

func (i Info) key() string { return fmt.Sprintf("%s/%d", i.Type, i.ID) }

func (i Info) Topic(field string) string {
	return fmt.Sprintf("openWB/set/%s/%d/get/%s", i.Type, i.ID, field)
}

type Status struct {
	Info
	FaultStr   string    `json:"fault_str"`
	FaultState int       `json:"fault_state"`
	Updated    time.Time `json:"updated"`
}

type Setter interface {
	Set(ctx context.Context, key string, value any) error
}

// Reporter publishes fault_str and fault_state for each update and keeps the
// latest status per component. Statuses may be read concurrently with Update.
type Reporter struct {
	setter Setter
	logger zerolog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	states map[string]Status
}

func NewReporter(setter Setter, logger zerolog.Logger) *Reporter {
	return &Reporter{
		setter: setter,
		logger: logger.With().Str("component", "reporter").Logger(),
		now:    time.Now,
		states: map[string]Status{},
	}
}

// Update runs fn and reports its outcome. fn's error is returned unchanged,
// joined with any error from publishing the fault state.
func (r *Reporter) Update(ctx context.Context, info Info, fn func(context.Context) error) error {
	err := fn(ctx)

	st := Status{Info: info, FaultStr: NoError, FaultState: fault.StateOK, Updated: r.now()}
	if err != nil {
		st.FaultStr = fault.MessageOf(err)
		st.FaultState = fault.State(fault.KindOf(err))
		r.logger.Error().Err(err).Str("name", info.Name).Int("fault_state", st.FaultState).Msg("component update failed")
	}

	r.mu.Lock()
	r.states[info.key()] = st
	r.mu.Unlock()

	pubErr := errors.Join(
		r.setter.Set(ctx, info.Topic("fault_str"), st.FaultStr),
		r.setter.Set(ctx, info.Topic("fault_state"), st.FaultState),
	)
	if pubErr != nil {
		r.logger.Warn().Err(pubErr).Str("name", info.Name).Msg("publishing fault state failed")
	}
	return errors.Join(err, pubErr)
}

func (r *Reporter) Statuses() []Status {
	r.mu.RLock()
	out := make([]Status, 0, len(r.states))
	for _, st := range r.states {
		out = append(out, st)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Healthy is true when no component is in the error state.
func (r *Reporter) Healthy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, st := range r.states {
		if st.FaultState == fault.StateError {
			return false
		}
	}
	return true
}
