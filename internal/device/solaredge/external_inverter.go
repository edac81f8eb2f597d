// Package solaredge reads a third-party inverter through the second meter
// input of a SolarEdge inverter.
package solaredge

import (
	"context"

	"github.com/nalxnet/openWB/internal/component"
	modbusIface "github.com/nalxnet/openWB/internal/interface/modbus"
	"github.com/nalxnet/openWB/internal/simcount"
	"github.com/nalxnet/openWB/internal/store"
)

// Meter 2 / total real power, sum of active phases, in W.
const regMeter2Power uint16 = 40380

type ExternalInverter struct {
	info   component.Info
	unitID uint8
	client modbusIface.Client
	store  store.InverterWriter
	sim    *simcount.Counter
}

func NewExternalInverter(id int, name string, unitID uint8, client modbusIface.Client, st store.InverterWriter) *ExternalInverter {
	return &ExternalInverter{
		info:   component.Info{ID: id, Name: name, Type: "pv"},
		unitID: unitID,
		client: client,
		store:  st,
		sim:    simcount.New(0, 0),
	}
}

func (i *ExternalInverter) Info() component.Info { return i.info }

func (i *ExternalInverter) ReadState() (store.InverterState, error) {
	power, err := i.client.ReadShortInt16(regMeter2Power, 1, i.unitID)
	if err != nil {
		return store.InverterState{}, err
	}
	_, exported := i.sim.Count(float64(power))
	return store.InverterState{Power: float64(power), Exported: exported}, nil
}

func (i *ExternalInverter) Update(ctx context.Context) error {
	st, err := i.ReadState()
	if err != nil {
		return err
	}
	return i.store.SetInverter(ctx, i.info.ID, st)
}
