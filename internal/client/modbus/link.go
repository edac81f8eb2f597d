package modbus

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nalxnet/openWB/internal/decode"
	"github.com/nalxnet/openWB/internal/fault"
	modbusIface "github.com/nalxnet/openWB/internal/interface/modbus"
	"github.com/nalxnet/openWB/internal/metrics"
	"github.com/rs/zerolog"
)

type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

type options struct {
	metrics *metrics.Collector
	timeout time.Duration
	trace   bool
}

type Option func(*options)

func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// WithTimeout sets the transport's connect and response timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTrace logs every Modbus frame through the link's logger.
func WithTrace() Option {
	return func(o *options) { o.trace = true }
}

// Link reads typed values from one Modbus-TCP endpoint and turns every
// failure into a *fault.Fault. A Link is not safe for concurrent use.
type Link struct {
	name      string
	unitID    uint8
	transport modbusIface.Transport
	logger    zerolog.Logger
	metrics   *metrics.Collector
	state     State
}

var _ modbusIface.Client = (*Link)(nil)

// Open creates a link to address:port. No connection is made until the
// first read, so Open cannot fail.
func Open(name string, unitID uint8, address string, port int, logger zerolog.Logger, opts ...Option) *Link {
	o := applyOptions(opts)
	logger = logger.With().Str("link", name).Logger()

	cfg := TransportConfig{Address: address, Port: port, Timeout: o.timeout}
	if o.trace {
		cfg.Trace = log.New(logger, "modbus: ", 0)
	}
	l := NewLink(name, unitID, NewTCPTransport(cfg), logger, opts...)
	l.logger.Debug().Str("address", address).Int("port", port).Uint8("unit_id", unitID).Msg("modbus tcp link created")
	return l
}

func NewLink(name string, unitID uint8, transport modbusIface.Transport, logger zerolog.Logger, opts ...Option) *Link {
	o := applyOptions(opts)
	return &Link{
		name:      name,
		unitID:    unitID,
		transport: transport,
		logger:    logger,
		metrics:   o.metrics,
		state:     Disconnected,
	}
}

func applyOptions(opts []Option) options {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (l *Link) Name() string { return l.name }

// UnitID is the unit identifier the link was configured with.
func (l *Link) UnitID() uint8 { return l.unitID }

func (l *Link) State() State { return l.state }

// Close releases the connection. It may be called any number of times; the
// next read reconnects.
func (l *Link) Close() error {
	l.logger.Debug().Msg("closing modbus tcp connection")
	l.state = Disconnected
	if err := l.transport.Close(); err != nil {
		l.logger.Warn().Err(err).Msg("error closing modbus tcp connection")
		return err
	}
	return nil
}

func (l *Link) ReadInt32(reg, count uint16, unitID uint8) (int32, error) {
	words, err := l.fetch(reg, count, unitID, modbusIface.Int32)
	if err != nil {
		return 0, err
	}
	v, err := decode.Int32(words)
	if err != nil {
		return 0, l.fail(reg, err)
	}
	return v, nil
}

func (l *Link) ReadShortInt16(reg, count uint16, unitID uint8) (int16, error) {
	words, err := l.fetch(reg, count, unitID, modbusIface.ShortInt16)
	if err != nil {
		return 0, err
	}
	v, err := decode.ShortInt16(words)
	if err != nil {
		return 0, l.fail(reg, err)
	}
	return v, nil
}

func (l *Link) ReadFloat32(reg, count uint16, unitID uint8) (float32, error) {
	words, err := l.fetch(reg, count, unitID, modbusIface.Float32)
	if err != nil {
		return 0, err
	}
	v, err := decode.Float32(words)
	if err != nil {
		return 0, l.fail(reg, err)
	}
	return v, nil
}

func (l *Link) ReadWordAsFloat(reg, count uint16, unitID uint8) (float64, error) {
	words, err := l.fetch(reg, count, unitID, modbusIface.WordAsFloat)
	if err != nil {
		return 0, err
	}
	v, err := decode.WordAsFloat(words)
	if err != nil {
		return 0, l.fail(reg, err)
	}
	return v, nil
}

func (l *Link) ReadBinaryInt(reg, count uint16, unitID uint8, bitWidth int, signed bool) (int64, error) {
	kind, err := binaryIntKind(bitWidth, signed)
	if err != nil {
		return 0, l.fail(reg, err)
	}
	words, err := l.fetch(reg, count, unitID, kind)
	if err != nil {
		return 0, err
	}
	v, err := decode.Binary(words, bitWidth, signed)
	if err != nil {
		return 0, l.fail(reg, err)
	}
	return v, nil
}

func (l *Link) ReadBinaryFloat(reg, count uint16, unitID uint8, bitWidth int) (float64, error) {
	kind := modbusIface.BinaryFloat32
	switch bitWidth {
	case 16:
		kind = modbusIface.BinaryFloat16
	case 32:
	default:
		return 0, l.fail(reg, fmt.Errorf("%w: unsupported bit width %d", decode.ErrInvalidArgument, bitWidth))
	}
	words, err := l.fetch(reg, count, unitID, kind)
	if err != nil {
		return 0, err
	}
	v, err := decode.BinaryFloat(words, bitWidth)
	if err != nil {
		return 0, l.fail(reg, err)
	}
	return v, nil
}

// Read dispatches on req.Kind.
func (l *Link) Read(req modbusIface.ReadRequest) (modbusIface.Value, error) {
	out := modbusIface.Value{Kind: req.Kind}
	var err error

	switch req.Kind {
	case modbusIface.Int32:
		var v int32
		v, err = l.ReadInt32(req.Address, req.Count, req.UnitID)
		out.Int = int64(v)
	case modbusIface.ShortInt16:
		var v int16
		v, err = l.ReadShortInt16(req.Address, req.Count, req.UnitID)
		out.Int = int64(v)
	case modbusIface.Float32:
		var v float32
		v, err = l.ReadFloat32(req.Address, req.Count, req.UnitID)
		out.Float = float64(v)
	case modbusIface.WordAsFloat:
		out.Float, err = l.ReadWordAsFloat(req.Address, req.Count, req.UnitID)
	case modbusIface.BinaryInt16, modbusIface.BinaryInt32:
		out.Int, err = l.ReadBinaryInt(req.Address, req.Count, req.UnitID, req.Kind.BitWidth(), true)
	case modbusIface.BinaryUint16, modbusIface.BinaryUint32:
		out.Int, err = l.ReadBinaryInt(req.Address, req.Count, req.UnitID, req.Kind.BitWidth(), false)
	case modbusIface.BinaryFloat16, modbusIface.BinaryFloat32:
		out.Float, err = l.ReadBinaryFloat(req.Address, req.Count, req.UnitID, req.Kind.BitWidth())
	default:
		err = l.fail(req.Address, fmt.Errorf("%w: unknown data kind %s", decode.ErrInvalidArgument, req.Kind))
	}
	if err != nil {
		return modbusIface.Value{}, err
	}
	return out, nil
}

func binaryIntKind(bitWidth int, signed bool) (modbusIface.DataKind, error) {
	switch {
	case bitWidth == 16 && signed:
		return modbusIface.BinaryInt16, nil
	case bitWidth == 16:
		return modbusIface.BinaryUint16, nil
	case bitWidth == 32 && signed:
		return modbusIface.BinaryInt32, nil
	case bitWidth == 32:
		return modbusIface.BinaryUint32, nil
	}
	return 0, fmt.Errorf("%w: unsupported bit width %d", decode.ErrInvalidArgument, bitWidth)
}

func (l *Link) fetch(reg, count uint16, unitID uint8, kind modbusIface.DataKind) ([]uint16, error) {
	if count != kind.Words() {
		return nil, l.fail(reg, fmt.Errorf("%w: %s needs %d registers, got %d",
			decode.ErrInvalidArgument, kind, kind.Words(), count))
	}

	start := time.Now()
	var words []uint16
	var err error
	if kind.Bank() == modbusIface.HoldingRegisters {
		words, err = l.transport.ReadHoldingRegisters(unitID, reg, count)
	} else {
		words, err = l.transport.ReadInputRegisters(unitID, reg, count)
	}
	l.metrics.Read(l.name, kind.String(), time.Since(start))
	if err != nil {
		return nil, l.fail(reg, err)
	}
	if len(words) != int(count) {
		return nil, l.fail(reg, &modbusIface.IOError{
			Register: reg,
			Err:      fmt.Errorf("got %d registers, want %d", len(words), count),
		})
	}

	l.state = Connected
	l.logger.Debug().
		Uint16("register", reg).
		Uint8("unit_id", unitID).
		Str("bank", kind.Bank().String()).
		Interface("words", words).
		Msg("registers read")
	return words, nil
}

func (l *Link) fail(reg uint16, err error) error {
	var connErr *modbusIface.ConnectionError
	var ioErr *modbusIface.IOError
	f := &fault.Fault{Register: reg, Err: err}

	switch {
	case errors.As(err, &connErr):
		f.Kind = fault.ConnectionFailure
		f.Message = fmt.Sprintf("%s could not establish a connection. "+
			"Check the settings (IP address, port, ...) and the hardware connection.", l.name)
		l.state = Disconnected
		l.logger.Error().Err(err).Bool("timeout", connErr.Timeout).Msg(f.Message)

	case errors.As(err, &ioErr):
		f.Kind = fault.ProtocolFailure
		f.Message = fmt.Sprintf("%s could not read values for register %d. "+
			"Stop parallel connections (e.g. node-red) if present and restart the meter if the error persists.", l.name, reg)
		l.logger.Error().Err(err).Uint16("register", reg).Msg(f.Message)
		l.disconnect()

	case errors.Is(err, decode.ErrInvalidArgument):
		f.Kind = fault.InvalidArgument
		f.Message = fmt.Sprintf("%s: invalid read of register %d: %v", l.name, reg, err)
		l.logger.Error().Err(err).Uint16("register", reg).Msg("invalid register read")

	default:
		f.Kind = fault.Unclassified
		f.Message = fmt.Sprintf("%s: unexpected error reading register %d", l.name, reg)
		l.logger.Error().Err(err).Uint16("register", reg).Msg(f.Message)
	}

	l.metrics.Fault(l.name, f.Kind)
	return f
}

func (l *Link) disconnect() {
	l.state = Disconnected
	if err := l.transport.Close(); err != nil {
		l.logger.Warn().Err(err).Msg("error closing modbus tcp connection")
	}
}
