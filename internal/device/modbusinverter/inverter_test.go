package modbusinverter

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/nalxnet/openWB/internal/fault"
	modbusIface "github.com/nalxnet/openWB/internal/interface/modbus"
	"github.com/nalxnet/openWB/internal/interface/modbus/mock_modbus"
	"github.com/nalxnet/openWB/internal/store"
)

type inverterStore struct {
	st  store.InverterState
	set bool
}

func (s *inverterStore) SetInverter(_ context.Context, _ int, st store.InverterState) error {
	s.st, s.set = st, true
	return nil
}

func TestReadStateWithExportedRegister(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_modbus.NewMockClient(ctrl)
	gomock.InOrder(
		client.EXPECT().Read(modbusIface.ReadRequest{Address: 30775, Count: 2, UnitID: 3, Kind: modbusIface.Int32}).
			Return(modbusIface.Value{Kind: modbusIface.Int32, Int: 2500}, nil),
		client.EXPECT().Read(modbusIface.ReadRequest{Address: 30529, Count: 2, UnitID: 3, Kind: modbusIface.BinaryUint32}).
			Return(modbusIface.Value{Kind: modbusIface.BinaryUint32, Int: 123456}, nil),
	)

	cfg := Config{
		UnitID:   3,
		Power:    Register{Address: 30775, Kind: modbusIface.Int32, Scale: -1},
		Exported: &Register{Address: 30529, Kind: modbusIface.BinaryUint32},
	}
	st := &inverterStore{}
	if err := New(1, "SMA", cfg, client, st).Update(context.Background()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if st.st.Power != -2500 || st.st.Exported != 123456 {
		t.Fatalf("state = %+v", st.st)
	}
}

func TestReadStateSimulatesExported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_modbus.NewMockClient(ctrl)
	client.EXPECT().Read(modbusIface.ReadRequest{Address: 100, Count: 2, UnitID: 1, Kind: modbusIface.Float32}).
		Return(modbusIface.Value{Kind: modbusIface.Float32, Float: -812.5}, nil)

	inv := New(2, "generic", Config{UnitID: 1, Power: Register{Address: 100, Kind: modbusIface.Float32}}, client, &inverterStore{})
	st, err := inv.ReadState()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if st.Power != -812.5 || st.Exported != 0 {
		t.Fatalf("state = %+v", st)
	}
}

func TestReadStateKeepsFaultKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_modbus.NewMockClient(ctrl)
	client.EXPECT().Read(gomock.Any()).
		Return(modbusIface.Value{}, &fault.Fault{Kind: fault.ConnectionFailure, Message: "down"})

	st := &inverterStore{}
	err := New(3, "generic", Config{Power: Register{Address: 1, Kind: modbusIface.ShortInt16}}, client, st).Update(context.Background())
	if fault.KindOf(err) != fault.ConnectionFailure {
		t.Fatalf("kind=%v err=%v", fault.KindOf(err), err)
	}
	if fault.MessageOf(err) != "down" {
		t.Fatalf("message=%q", fault.MessageOf(err))
	}
	if st.set {
		t.Fatalf("nothing should be stored on failure")
	}
}
