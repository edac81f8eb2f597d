// Package decode turns Modbus register words into numbers.
//
// Byte order and word order are big-endian throughout: the first register
// holds the most significant word and each register's high byte comes first.
package decode

import (
	"errors"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// ErrInvalidArgument is wrapped by every error caused by a word count that
// does not fit the requested width.
var ErrInvalidArgument = errors.New("decode: invalid argument")

// Words converts a raw register response into 16-bit words.
func Words(raw []byte) ([]uint16, error) {
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("decode: odd response length %d", len(raw))
	}
	out := make([]uint16, len(raw)/2)
	for i := range out {
		out[i] = uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
	}
	return out, nil
}

// WordCount returns how many registers a value of bitWidth occupies.
func WordCount(bitWidth int) (int, error) {
	switch bitWidth {
	case 16, 32:
		return bitWidth / 16, nil
	default:
		return 0, fmt.Errorf("%w: unsupported bit width %d", ErrInvalidArgument, bitWidth)
	}
}

func expect(words []uint16, n int) error {
	if len(words) != n {
		return fmt.Errorf("%w: got %d words, want %d", ErrInvalidArgument, len(words), n)
	}
	return nil
}

func join(hi, lo uint16) uint32 {
	return uint32(hi)<<16 | uint32(lo)
}

func Int32(words []uint16) (int32, error) {
	if err := expect(words, 2); err != nil {
		return 0, err
	}
	return int32(join(words[0], words[1])), nil
}

func ShortInt16(words []uint16) (int16, error) {
	if err := expect(words, 1); err != nil {
		return 0, err
	}
	return int16(words[0]), nil
}

// Float32 reinterprets two words as an IEEE-754 single.
func Float32(words []uint16) (float32, error) {
	if err := expect(words, 2); err != nil {
		return 0, err
	}
	return math.Float32frombits(join(words[0], words[1])), nil
}

// WordAsFloat discards the first word and returns the second one as a float.
// One sensor family encodes its value this way; whether that is the vendor
// format or a long-standing bug has not been confirmed, so the behaviour is
// kept as is.
func WordAsFloat(words []uint16) (float64, error) {
	if err := expect(words, 2); err != nil {
		return 0, err
	}
	return float64(words[1]), nil
}

// Binary decodes a 16 or 32 bit integer.
func Binary(words []uint16, bitWidth int, signed bool) (int64, error) {
	n, err := WordCount(bitWidth)
	if err != nil {
		return 0, err
	}
	if err := expect(words, n); err != nil {
		return 0, err
	}
	if bitWidth == 16 {
		if signed {
			return int64(int16(words[0])), nil
		}
		return int64(words[0]), nil
	}
	v := join(words[0], words[1])
	if signed {
		return int64(int32(v)), nil
	}
	return int64(v), nil
}

// BinaryFloat decodes a half or single precision float.
func BinaryFloat(words []uint16, bitWidth int) (float64, error) {
	n, err := WordCount(bitWidth)
	if err != nil {
		return 0, err
	}
	if err := expect(words, n); err != nil {
		return 0, err
	}
	if bitWidth == 16 {
		return float64(float16.Frombits(words[0]).Float32()), nil
	}
	return float64(math.Float32frombits(join(words[0], words[1]))), nil
}
