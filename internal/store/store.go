// Package store publishes component readings into the shared openWB value
// store. The broker topic layout is the key layout for every sink.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nalxnet/openWB/internal/metrics"
	"github.com/rs/zerolog"
)

type InverterState struct {
	// Power in W, negative while producing.
	Power float64
	// Exported energy in Wh.
	Exported float64
}

type CarState struct {
	// SoC in percent.
	SoC float64
}

type InverterWriter interface {
	SetInverter(ctx context.Context, id int, st InverterState) error
}

type CarWriter interface {
	SetCar(ctx context.Context, id int, st CarState) error
}

// Sink stores one JSON encodable value under key.
type Sink interface {
	Set(ctx context.Context, key string, value any) error
}

func InverterTopic(id int, field string) string {
	return fmt.Sprintf("openWB/set/pv/%d/get/%s", id, field)
}

func VehicleTopic(id int, field string) string {
	return fmt.Sprintf("openWB/set/vehicle/%d/get/%s", id, field)
}

type Store struct {
	sinks   []Sink
	logger  zerolog.Logger
	metrics *metrics.Collector
}

func New(logger zerolog.Logger, m *metrics.Collector, sinks ...Sink) *Store {
	return &Store{
		sinks:   sinks,
		logger:  logger.With().Str("component", "store").Logger(),
		metrics: m,
	}
}

// Set writes value to every sink. All sinks are tried; their errors are joined.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Set(ctx, key, value); err != nil {
			errs = append(errs, fmt.Errorf("set %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) SetInverter(ctx context.Context, id int, st InverterState) error {
	s.logger.Debug().Int("id", id).Float64("power", st.Power).Float64("exported", st.Exported).Msg("inverter state")
	name := fmt.Sprintf("pv-%d", id)
	s.metrics.Value(name, "power", st.Power)
	s.metrics.Value(name, "exported", st.Exported)

	return errors.Join(
		s.Set(ctx, InverterTopic(id, "power"), st.Power),
		s.Set(ctx, InverterTopic(id, "exported"), st.Exported),
	)
}

func (s *Store) SetCar(ctx context.Context, id int, st CarState) error {
	s.logger.Debug().Int("id", id).Float64("soc", st.SoC).Msg("car state")
	s.metrics.Value(fmt.Sprintf("vehicle-%d", id), "soc", st.SoC)

	return s.Set(ctx, VehicleTopic(id, "soc"), st.SoC)
}
