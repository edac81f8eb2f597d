package modbus

import (
	"errors"
	"io"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/goburrow/modbus"
	"github.com/golang/mock/gomock"
	modbusIface "github.com/nalxnet/openWB/internal/interface/modbus"
	"github.com/nalxnet/openWB/internal/interface/modbus/mock_modbus"
)

func newTestTransport(t *testing.T) (*transport, *mock_modbus.MockAPI, *uint8) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mock_modbus.NewMockAPI(ctrl)
	unit := new(uint8)
	return &transport{
		API:     api,
		address: "192.168.1.20:502",
		setUnit: func(id uint8) { *unit = id },
	}, api, unit
}

func TestTransportReadsWords(t *testing.T) {
	tr, api, unit := newTestTransport(t)

	api.EXPECT().ReadInputRegisters(uint16(30775), uint16(2)).Return([]byte{0xFF, 0xFF, 0xFC, 0x18}, nil)
	api.EXPECT().ReadHoldingRegisters(uint16(40380), uint16(1)).Return([]byte{0x01, 0xF4}, nil)

	words, err := tr.ReadInputRegisters(3, 30775, 2)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(words) != 2 || words[0] != 0xFFFF || words[1] != 0xFC18 {
		t.Fatalf("got %v", words)
	}
	if *unit != 3 {
		t.Fatalf("unit id = %d, want 3", *unit)
	}

	words, err = tr.ReadHoldingRegisters(7, 40380, 1)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(words) != 1 || words[0] != 500 {
		t.Fatalf("got %v", words)
	}
	if *unit != 7 {
		t.Fatalf("unit id = %d, want 7", *unit)
	}
}

func TestTransportClassifiesDialErrors(t *testing.T) {
	tr, api, _ := newTestTransport(t)

	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	api.EXPECT().ReadInputRegisters(uint16(1), uint16(2)).Return(nil, dialErr)

	_, err := tr.ReadInputRegisters(1, 1, 2)
	var connErr *modbusIface.ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected ConnectionError, got %T (%v)", err, err)
	}
	if connErr.Address != "192.168.1.20:502" {
		t.Fatalf("address = %q", connErr.Address)
	}
	if connErr.Timeout {
		t.Fatalf("refused connection reported as timeout")
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestTransportDialTimeout(t *testing.T) {
	tr, api, _ := newTestTransport(t)

	api.EXPECT().ReadInputRegisters(uint16(1), uint16(2)).
		Return(nil, &net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}})

	_, err := tr.ReadInputRegisters(1, 1, 2)
	var connErr *modbusIface.ConnectionError
	if !errors.As(err, &connErr) || !connErr.Timeout {
		t.Fatalf("expected timed out ConnectionError, got %v", err)
	}
}

func TestTransportClassifiesIOErrors(t *testing.T) {
	cases := map[string]error{
		"eof":          io.EOF,
		"read timeout": &net.OpError{Op: "read", Net: "tcp", Err: timeoutErr{}},
		"exception":    &modbus.ModbusError{FunctionCode: 0x83, ExceptionCode: modbus.ExceptionCodeIllegalDataAddress},
		"size":         errors.New("modbus: response data size '2' does not match count '4'"),
	}
	for name, cause := range cases {
		tr, api, _ := newTestTransport(t)
		api.EXPECT().ReadHoldingRegisters(uint16(40000), uint16(2)).Return(nil, cause)

		_, err := tr.ReadHoldingRegisters(1, 40000, 2)
		var ioErr *modbusIface.IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("%s: expected IOError, got %T (%v)", name, err, err)
		}
		if ioErr.Register != 40000 {
			t.Fatalf("%s: register = %d", name, ioErr.Register)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("%s: cause not wrapped", name)
		}
	}
}

func TestTransportRejectsMalformedPayload(t *testing.T) {
	tr, api, _ := newTestTransport(t)

	api.EXPECT().ReadInputRegisters(uint16(0), uint16(2)).Return([]byte{0x00, 0x01, 0x02}, nil)
	api.EXPECT().ReadInputRegisters(uint16(0), uint16(2)).Return([]byte{0x00, 0x01}, nil)

	for i := 0; i < 2; i++ {
		_, err := tr.ReadInputRegisters(1, 0, 2)
		var ioErr *modbusIface.IOError
		if !errors.As(err, &ioErr) {
			t.Fatalf("read %d: expected IOError, got %v", i, err)
		}
	}
}

func TestLoadEnvCfg(t *testing.T) {
	t.Setenv("MODBUS_TIMEOUT_MS", "1500")
	t.Setenv("MODBUS_TRACE", "true")

	c, err := LoadEnvCfg()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if c.Timeout() != 1500*time.Millisecond || !c.Trace {
		t.Fatalf("got %+v", c)
	}

	t.Setenv("MODBUS_TIMEOUT_MS", "soon")
	if _, err := LoadEnvCfg(); err == nil {
		t.Fatalf("expected error for bad timeout")
	}
}

func TestLoadEnvCfgDefaults(t *testing.T) {
	t.Setenv("MODBUS_TIMEOUT_MS", "")
	t.Setenv("MODBUS_TRACE", "")

	c, err := LoadEnvCfg()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if c.Timeout() != DefaultTimeout || c.Trace {
		t.Fatalf("got %+v", c)
	}
}
