package device

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	modbusClient "github.com/nalxnet/openWB/internal/client/modbus"
	"github.com/nalxnet/openWB/internal/component"
	modbusIface "github.com/nalxnet/openWB/internal/interface/modbus"
	"github.com/nalxnet/openWB/internal/store"
	"github.com/rs/zerolog"
)

type nopWriter struct{}

func (nopWriter) SetInverter(context.Context, int, store.InverterState) error { return nil }
func (nopWriter) SetCar(context.Context, int, store.CarState) error           { return nil }

type directReporter struct{ calls []component.Info }

func (r *directReporter) Update(ctx context.Context, info component.Info, fn func(context.Context) error) error {
	r.calls = append(r.calls, info)
	return fn(ctx)
}

type fakeComponent struct {
	info component.Info
	err  error
	runs int
}

func (c *fakeComponent) Info() component.Info { return c.info }

func (c *fakeComponent) Update(context.Context) error {
	c.runs++
	return c.err
}

func TestLoadFile(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "devices.yaml"))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(f.Devices) != 4 {
		t.Fatalf("got %d devices", len(f.Devices))
	}
	sma := f.Devices[1]
	if sma.Port != 1502 || sma.Components[0].Power.Kind != modbusIface.Int32 || sma.Components[0].Power.Scale != -1 {
		t.Fatalf("sma = %+v power=%+v", sma, sma.Components[0].Power)
	}
	if sma.Components[0].Exported.Kind != modbusIface.BinaryUint32 {
		t.Fatalf("exported kind = %v", sma.Components[0].Exported.Kind)
	}
}

func TestLoadFileRejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	data := "devices:\n  - name: x\n    type: modbus\n    host: h\n    components:\n      - id: 1\n        power: {address: 1, kind: int64}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for unknown data kind")
	}
}

func TestValidate(t *testing.T) {
	f := &File{Devices: []Config{
		{Name: "a", Type: "sunspec", Components: []ComponentConfig{{ID: 1}}},
		{Name: "b", Type: TypeModbus, Components: []ComponentConfig{{ID: 1}}},
		{Name: "b", Type: TypeHTTP, URL: "http://x", Components: []ComponentConfig{{ID: 1, PowerPath: "none"}}},
		{Name: "c", Type: TypeEVNotify},
	}}
	err := f.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("missing ErrUnknownType in %v", err)
	}
	for _, want := range []string{"host is required", "power register is required", "duplicate device name", "duplicate pv id 1", "power_path is required", "no components"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("%q not in %v", want, err)
		}
	}
}

func TestBuildDoesNotDial(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "devices.yaml"))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	devices, err := Build(f, Deps{
		Logger:   zerolog.Nop(),
		Store:    nopWriter{},
		Reporter: &directReporter{},
		Modbus:   modbusClient.EnvCfg{TimeoutMs: 100},
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(devices) != 4 {
		t.Fatalf("got %d devices", len(devices))
	}
	if devices[3].Components()[0].Info().Type != "vehicle" {
		t.Fatalf("evnotify component type = %q", devices[3].Components()[0].Info().Type)
	}
	if devices[0].Components()[0].Info().Name != "SolarEdge external inverter" {
		t.Fatalf("name = %q", devices[0].Components()[0].Info().Name)
	}
	for _, d := range devices {
		if err := d.Close(); err != nil {
			t.Fatalf("%s: close err=%v", d.Name(), err)
		}
	}
}

func TestUpdateRunsEveryComponent(t *testing.T) {
	boom := errors.New("boom")
	a := &fakeComponent{info: component.Info{ID: 1, Type: "pv"}, err: boom}
	b := &fakeComponent{info: component.Info{ID: 2, Type: "pv"}}
	rep := &directReporter{}

	d := New("dev", rep, nil, a, b)
	err := d.Update(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
	if a.runs != 1 || b.runs != 1 || len(rep.calls) != 2 {
		t.Fatalf("runs a=%d b=%d reports=%d", a.runs, b.runs, len(rep.calls))
	}
}

func TestUpdateStopsOnCancel(t *testing.T) {
	a := &fakeComponent{info: component.Info{ID: 1, Type: "pv"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := New("dev", &directReporter{}, nil, a).Update(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
	if a.runs != 0 {
		t.Fatalf("component ran after cancel")
	}
}
