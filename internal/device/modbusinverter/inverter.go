// Package modbusinverter reads an inverter whose power and energy registers
// are given in the device configuration.
package modbusinverter

import (
	"context"
	"fmt"

	"github.com/nalxnet/openWB/internal/component"
	modbusIface "github.com/nalxnet/openWB/internal/interface/modbus"
	"github.com/nalxnet/openWB/internal/simcount"
	"github.com/nalxnet/openWB/internal/store"
)

type Register struct {
	Address uint16              `yaml:"address"`
	Kind    modbusIface.DataKind `yaml:"kind"`
	// Scale multiplies the decoded value. Zero means 1.
	Scale float64 `yaml:"scale"`
}

func (r Register) request(unitID uint8) modbusIface.ReadRequest {
	return modbusIface.ReadRequest{Address: r.Address, Count: r.Kind.Words(), UnitID: unitID, Kind: r.Kind}
}

func (r Register) apply(v modbusIface.Value) float64 {
	if r.Scale == 0 {
		return v.Float64()
	}
	return v.Float64() * r.Scale
}

type Config struct {
	UnitID uint8    `yaml:"unit_id"`
	Power  Register `yaml:"power"`
	// Exported is optional; without it exported energy is integrated from power.
	Exported *Register `yaml:"exported"`
}

type Inverter struct {
	info   component.Info
	cfg    Config
	client modbusIface.Client
	store  store.InverterWriter
	sim    *simcount.Counter
}

func New(id int, name string, cfg Config, client modbusIface.Client, st store.InverterWriter) *Inverter {
	return &Inverter{
		info:   component.Info{ID: id, Name: name, Type: "pv"},
		cfg:    cfg,
		client: client,
		store:  st,
		sim:    simcount.New(0, 0),
	}
}

func (i *Inverter) Info() component.Info { return i.info }

func (i *Inverter) ReadState() (store.InverterState, error) {
	v, err := i.client.Read(i.cfg.Power.request(i.cfg.UnitID))
	if err != nil {
		return store.InverterState{}, fmt.Errorf("power: %w", err)
	}
	power := i.cfg.Power.apply(v)

	if i.cfg.Exported == nil {
		_, exported := i.sim.Count(power)
		return store.InverterState{Power: power, Exported: exported}, nil
	}

	v, err = i.client.Read(i.cfg.Exported.request(i.cfg.UnitID))
	if err != nil {
		return store.InverterState{}, fmt.Errorf("exported: %w", err)
	}
	return store.InverterState{Power: power, Exported: i.cfg.Exported.apply(v)}, nil
}

func (i *Inverter) Update(ctx context.Context) error {
	st, err := i.ReadState()
	if err != nil {
		return err
	}
	return i.store.SetInverter(ctx, i.info.ID, st)
}
