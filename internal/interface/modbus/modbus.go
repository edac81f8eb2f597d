package modbus

//go:generate mockgen -source=modbus.go -destination=mock_modbus/modbus.go

import (
	"fmt"
	"strings"
)

type Bank int

const (
	InputRegisters Bank = iota
	HoldingRegisters
)

func (b Bank) String() string {
	if b == HoldingRegisters {
		return "holding"
	}
	return "input"
}

// DataKind selects the register bank, the width and the numeric
// interpretation of a read.
type DataKind int

const (
	Int32 DataKind = iota
	ShortInt16
	Float32
	WordAsFloat
	BinaryInt16
	BinaryUint16
	BinaryInt32
	BinaryUint32
	BinaryFloat16
	BinaryFloat32
)

var kindNames = map[DataKind]string{
	Int32:         "int32",
	ShortInt16:    "short_int16",
	Float32:       "float32",
	WordAsFloat:   "word_as_float",
	BinaryInt16:   "binary_int16",
	BinaryUint16:  "binary_uint16",
	BinaryInt32:   "binary_int32",
	BinaryUint32:  "binary_uint32",
	BinaryFloat16: "binary_float16",
	BinaryFloat32: "binary_float32",
}

func (k DataKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DataKind(%d)", int(k))
}

func ParseDataKind(s string) (DataKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown data kind %q", s)
}

func (k *DataKind) UnmarshalText(text []byte) error {
	v, err := ParseDataKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k DataKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Bank is the register bank the kind is read from.
func (k DataKind) Bank() Bank {
	switch k {
	case Int32, Float32, WordAsFloat:
		return InputRegisters
	default:
		return HoldingRegisters
	}
}

// BitWidth is the width of the decoded value. WordAsFloat reports 32 because
// it fetches two registers even though only the second one is used.
func (k DataKind) BitWidth() int {
	switch k {
	case ShortInt16, BinaryInt16, BinaryUint16, BinaryFloat16:
		return 16
	default:
		return 32
	}
}

func (k DataKind) Words() uint16 { return uint16(k.BitWidth() / 16) }

func (k DataKind) IsFloat() bool {
	switch k {
	case Float32, WordAsFloat, BinaryFloat16, BinaryFloat32:
		return true
	default:
		return false
	}
}

type ReadRequest struct {
	Address uint16   `json:"address" yaml:"address"`
	Count   uint16   `json:"count" yaml:"count"`
	UnitID  uint8    `json:"unit_id" yaml:"unit_id"`
	Kind    DataKind `json:"kind" yaml:"kind"`
}

// Value is a decoded register value. Float is set for float kinds, Int for
// the others.
type Value struct {
	Kind  DataKind
	Int   int64
	Float float64
}

func (v Value) Float64() float64 {
	if v.Kind.IsFloat() {
		return v.Float
	}
	return float64(v.Int)
}

// Client is a typed, fault-classified reader bound to one endpoint. Every
// non-nil error returned by the read methods is a *fault.Fault.
type Client interface {
	Name() string
	ReadInt32(reg, count uint16, unitID uint8) (int32, error)
	ReadShortInt16(reg, count uint16, unitID uint8) (int16, error)
	ReadFloat32(reg, count uint16, unitID uint8) (float32, error)
	ReadWordAsFloat(reg, count uint16, unitID uint8) (float64, error)
	ReadBinaryInt(reg, count uint16, unitID uint8, bitWidth int, signed bool) (int64, error)
	ReadBinaryFloat(reg, count uint16, unitID uint8, bitWidth int) (float64, error)
	Read(req ReadRequest) (Value, error)
	Close() error
}

// Transport moves register words. Implementations report an unreachable peer
// as *ConnectionError and a failed exchange on a reachable peer as *IOError.
type Transport interface {
	ReadInputRegisters(unitID uint8, address, quantity uint16) ([]uint16, error)
	ReadHoldingRegisters(unitID uint8, address, quantity uint16) ([]uint16, error)
	Close() error
}

// API is the subset of the goburrow client a Transport needs.
type API interface {
	ReadHoldingRegisters(address, quantity uint16) (results []byte, err error)
	ReadInputRegisters(address, quantity uint16) (results []byte, err error)
}

type ConnectionError struct {
	Address string
	Timeout bool
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("modbus: connect %s: timeout: %v", e.Address, e.Err)
	}
	return fmt.Sprintf("modbus: connect %s: %v", e.Address, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

type IOError struct {
	Register uint16
	Err      error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("modbus: register %d: %v", e.Register, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
