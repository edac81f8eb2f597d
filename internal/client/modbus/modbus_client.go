package modbus

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/goburrow/modbus"
	"github.com/nalxnet/openWB/internal/decode"
	modbusIface "github.com/nalxnet/openWB/internal/interface/modbus"
)

const (
	DefaultPort    = 502
	DefaultTimeout = 5 * time.Second
)

type EnvCfg struct {
	TimeoutMs int
	Trace     bool
}

func LoadEnvCfg() (EnvCfg, error) {
	c := EnvCfg{TimeoutMs: int(DefaultTimeout / time.Millisecond)}

	if v := os.Getenv("MODBUS_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return c, fmt.Errorf("invalid MODBUS_TIMEOUT_MS %q", v)
		}
		c.TimeoutMs = ms
	}
	if v := os.Getenv("MODBUS_TRACE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("invalid MODBUS_TRACE %q: %w", v, err)
		}
		c.Trace = b
	}
	return c, nil
}

func (c EnvCfg) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type TransportConfig struct {
	Address string
	Port    int
	Timeout time.Duration
	// Trace receives every ADU sent and received when set.
	Trace *log.Logger
}

// transport adapts a goburrow client to modbusIface.Transport. The goburrow
// TCP handler dials lazily on the first request after construction or Close,
// so reconnecting needs nothing beyond closing.
type transport struct {
	modbusIface.API
	address string
	setUnit func(uint8)
	closeFn func() error
}

func NewTCPTransport(cfg TransportConfig) modbusIface.Transport {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	addr := net.JoinHostPort(cfg.Address, strconv.Itoa(cfg.Port))

	th := modbus.NewTCPClientHandler(addr)
	th.Timeout = cfg.Timeout
	if cfg.Trace != nil {
		th.Logger = cfg.Trace
	}

	return &transport{
		API:     modbus.NewClient(th),
		address: addr,
		setUnit: func(id uint8) { th.SlaveId = id },
		closeFn: th.Close,
	}
}

func (t *transport) ReadInputRegisters(unitID uint8, address, quantity uint16) ([]uint16, error) {
	t.setUnit(unitID)
	raw, err := t.API.ReadInputRegisters(address, quantity)
	return t.words(address, quantity, raw, err)
}

func (t *transport) ReadHoldingRegisters(unitID uint8, address, quantity uint16) ([]uint16, error) {
	t.setUnit(unitID)
	raw, err := t.API.ReadHoldingRegisters(address, quantity)
	return t.words(address, quantity, raw, err)
}

func (t *transport) Close() error {
	if t.closeFn == nil {
		return nil
	}
	return t.closeFn()
}

func (t *transport) words(address, quantity uint16, raw []byte, err error) ([]uint16, error) {
	if err != nil {
		return nil, classify(t.address, address, err)
	}
	words, err := decode.Words(raw)
	if err != nil {
		return nil, &modbusIface.IOError{Register: address, Err: err}
	}
	if len(words) != int(quantity) {
		return nil, &modbusIface.IOError{
			Register: address,
			Err:      fmt.Errorf("got %d registers, want %d", len(words), quantity),
		}
	}
	return words, nil
}

// classify splits goburrow errors into "could not reach the peer" and
// "peer reached, exchange failed". goburrow returns dial errors unwrapped,
// everything after a successful dial (timeouts, EOF, exception responses,
// malformed frames) counts as an IO failure.
func classify(endpoint string, register uint16, err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &modbusIface.ConnectionError{Address: endpoint, Timeout: opErr.Timeout(), Err: err}
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return &modbusIface.ConnectionError{Address: endpoint, Err: err}
	}
	return &modbusIface.IOError{Register: register, Err: err}
}
