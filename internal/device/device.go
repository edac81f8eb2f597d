// Package device assembles configured devices into updatable units. A device
// owns its connection and reports a fault state for each of its components.
package device

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	modbusClient "github.com/nalxnet/openWB/internal/client/modbus"
	"github.com/nalxnet/openWB/internal/component"
	"github.com/nalxnet/openWB/internal/device/evnotify"
	"github.com/nalxnet/openWB/internal/device/httpinverter"
	"github.com/nalxnet/openWB/internal/device/modbusinverter"
	"github.com/nalxnet/openWB/internal/device/solaredge"
	"github.com/nalxnet/openWB/internal/metrics"
	"github.com/nalxnet/openWB/internal/store"
	"github.com/rs/zerolog"
)

type Component interface {
	Info() component.Info
	Update(ctx context.Context) error
}

type Reporter interface {
	Update(ctx context.Context, info component.Info, fn func(context.Context) error) error
}

type Writer interface {
	store.InverterWriter
	store.CarWriter
}

type Device struct {
	name       string
	components []Component
	reporter   Reporter
	closeFn    func() error
}

func New(name string, reporter Reporter, closeFn func() error, components ...Component) *Device {
	return &Device{name: name, components: components, reporter: reporter, closeFn: closeFn}
}

func (d *Device) Name() string { return d.name }

func (d *Device) Components() []Component { return d.components }

// Update refreshes every component in order. A failing component does not
// stop the others; all errors are joined.
func (d *Device) Update(ctx context.Context) error {
	var errs []error
	for _, c := range d.components {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := d.reporter.Update(ctx, c.Info(), c.Update); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
		}
	}
	return errors.Join(errs...)
}

func (d *Device) Close() error {
	if d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}

type Deps struct {
	Logger   zerolog.Logger
	Store    Writer
	Reporter Reporter
	Metrics  *metrics.Collector
	Modbus   modbusClient.EnvCfg
	// HTTP is used by http and evnotify devices. Nil means a client with
	// the Modbus timeout.
	HTTP *http.Client
}

// Build creates a device for every entry of f. Nothing is dialed here.
func Build(f *File, deps Deps) ([]*Device, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if deps.HTTP == nil {
		timeout := deps.Modbus.Timeout()
		if timeout <= 0 {
			timeout = modbusClient.DefaultTimeout
		}
		deps.HTTP = &http.Client{Timeout: timeout}
	}

	out := make([]*Device, 0, len(f.Devices))
	for _, cfg := range f.Devices {
		d, err := build(cfg, deps)
		if err != nil {
			for _, built := range out {
				_ = built.Close()
			}
			return nil, fmt.Errorf("%s: %w", cfg.Name, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func build(cfg Config, deps Deps) (*Device, error) {
	logger := deps.Logger.With().Str("device", cfg.Name).Logger()
	components := make([]Component, 0, len(cfg.Components))

	switch cfg.Type {
	case TypeSolarEdge, TypeModbus:
		link := openLink(cfg, deps, logger)
		for _, c := range cfg.Components {
			name := componentName(cfg, c)
			if cfg.Type == TypeSolarEdge {
				components = append(components, solaredge.NewExternalInverter(c.ID, name, c.UnitID, link, deps.Store))
				continue
			}
			components = append(components, modbusinverter.New(c.ID, name, modbusinverter.Config{
				UnitID:   c.UnitID,
				Power:    *c.Power,
				Exported: c.Exported,
			}, link, deps.Store))
		}
		return New(cfg.Name, deps.Reporter, link.Close, components...), nil

	case TypeHTTP:
		for _, c := range cfg.Components {
			components = append(components, httpinverter.New(c.ID, componentName(cfg, c), httpinverter.Config{
				URL:          cfg.URL,
				PowerPath:    c.PowerPath,
				ExportedPath: c.ExportedPath,
			}, deps.HTTP, deps.Store))
		}
		return New(cfg.Name, deps.Reporter, nil, components...), nil

	case TypeEVNotify:
		for _, c := range cfg.Components {
			components = append(components, evnotify.New(c.ID, componentName(cfg, c), evnotify.Config{
				API:   cfg.API,
				AKey:  c.AKey,
				Token: c.Token,
			}, deps.HTTP, deps.Store))
		}
		return New(cfg.Name, deps.Reporter, nil, components...), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, cfg.Type)
}

func openLink(cfg Config, deps Deps, logger zerolog.Logger) *modbusClient.Link {
	opts := []modbusClient.Option{modbusClient.WithMetrics(deps.Metrics)}
	if t := deps.Modbus.Timeout(); t > 0 {
		opts = append(opts, modbusClient.WithTimeout(t))
	}
	if deps.Modbus.Trace {
		opts = append(opts, modbusClient.WithTrace())
	}
	var unitID uint8 = 1
	if len(cfg.Components) > 0 && cfg.Components[0].UnitID != 0 {
		unitID = cfg.Components[0].UnitID
	}
	return modbusClient.Open(cfg.Name, unitID, cfg.Host, cfg.Port, logger, opts...)
}

func componentName(cfg Config, c ComponentConfig) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s %d", cfg.Name, c.ID)
}

// Loop calls Update every interval until ctx is done. The first update runs
// immediately.
func (d *Device) Loop(ctx context.Context, interval time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := d.Update(ctx); err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Str("device", d.name).Msg("device update failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
