package smc

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Kind groups type tags by how their payload is interpreted.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindUnsigned
	KindSigned
	KindFixed
	KindFloat
	KindText
	KindFlags
)

func (k Kind) String() string {
	switch k {
	case KindUnsigned:
		return "unsigned"
	case KindSigned:
		return "signed"
	case KindFixed:
		return "fixed"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Value is the raw result of reading one key. Only the first DataSize
// bytes of Bytes are meaningful.
type Value struct {
	Key      Key
	DataSize uint32
	DataType DataType
	Bytes    [32]byte
}

// Data returns the meaningful leading bytes of the payload.
func (v Value) Data() []byte {
	n := int(v.DataSize)
	if n > len(v.Bytes) {
		n = len(v.Bytes)
	}
	return v.Bytes[:n]
}

// format describes one type tag. Exactly one of real or whole is set for
// numeric kinds; text has neither.
type format struct {
	kind  Kind
	width int // bytes consumed; 0 means all of Data()
	max   int // upper bound on Data() when width is 0
	real  func(b []byte) float64
	whole func(b []byte) uint64
}

// formats is the closed decode table, keyed by the exact wire tag.
var formats = map[DataType]format{
	"ui8 ": unsignedInt(1),
	"ui16": unsignedInt(2),
	"ui32": unsignedInt(4),
	"si8 ": signedInt(1),
	"si16": signedInt(2),
	"si32": signedInt(4),

	"sp1e": signedFixed(14),
	"sp2d": signedFixed(13),
	"sp3c": signedFixed(12),
	"sp4b": signedFixed(11),
	"sp5a": signedFixed(10),
	"sp69": signedFixed(9),
	"sp78": signedFixed(8),
	"sp87": signedFixed(7),
	"sp96": signedFixed(6),
	"spa5": signedFixed(5),
	"spb4": signedFixed(4),
	"spf0": signedFixed(0),

	"fp1f": unsignedFixed(15),
	"fp2e": unsignedFixed(14),
	"fp3d": unsignedFixed(13),
	"fp4c": unsignedFixed(12),
	"fp5b": unsignedFixed(11),
	"fp6a": unsignedFixed(10),
	"fp79": unsignedFixed(9),
	"fp88": unsignedFixed(8),
	"fpa6": unsignedFixed(6),
	"fpc4": unsignedFixed(4),
	"fpe2": unsignedFixed(2),

	"flt ": {kind: KindFloat, width: 4, real: func(b []byte) float64 {
		return float64(math.Float32frombits(binary.NativeEndian.Uint32(b)))
	}},
	"dbl ": {kind: KindFloat, width: 8, real: func(b []byte) float64 {
		return math.Float64frombits(binary.NativeEndian.Uint64(b))
	}},

	"ch8*": {kind: KindText},

	"hex_": flags(),
	"flag": flags(),
}

func bigEndian(b []byte) uint64 {
	var n uint64
	for _, c := range b {
		n = n<<8 | uint64(c)
	}
	return n
}

func unsignedInt(width int) format {
	return format{kind: KindUnsigned, width: width, whole: bigEndian}
}

func signedInt(width int) format {
	shift := 64 - 8*width
	return format{kind: KindSigned, width: width, whole: func(b []byte) uint64 {
		// sign-extend from the top bit of the payload
		return uint64(int64(bigEndian(b)<<shift) >> shift)
	}}
}

func signedFixed(fraction uint) format {
	div := float64(uint64(1) << fraction)
	return format{kind: KindFixed, width: 2, real: func(b []byte) float64 {
		return float64(int16(binary.BigEndian.Uint16(b))) / div
	}}
}

func unsignedFixed(fraction uint) format {
	div := float64(uint64(1) << fraction)
	return format{kind: KindFixed, width: 2, real: func(b []byte) float64 {
		return float64(binary.BigEndian.Uint16(b)) / div
	}}
}

func flags() format {
	return format{kind: KindFlags, max: 8, whole: bigEndian}
}

// Kind reports how the value's type tag is interpreted.
func (v Value) Kind() Kind {
	return formats[v.DataType].kind
}

func (v Value) payload() (format, []byte, error) {
	f, ok := formats[v.DataType]
	if !ok {
		return f, nil, &UnknownTypeError{Type: v.DataType}
	}
	data := v.Data()
	if f.width > 0 {
		if len(data) < f.width {
			return f, nil, &SizeError{Type: v.DataType, Want: f.width, Got: len(data)}
		}
		data = data[:f.width]
	}
	if f.max > 0 && len(data) > f.max {
		return f, nil, fmt.Errorf("smc: %q value of %d bytes does not fit in %d", string(v.DataType), len(data), f.max)
	}
	return f, data, nil
}

// Float decodes any numeric type tag. Integers are converted, fixed point
// values are scaled by their fraction width.
func (v Value) Float() (float64, error) {
	f, data, err := v.payload()
	if err != nil {
		return 0, err
	}
	switch {
	case f.real != nil:
		return f.real(data), nil
	case f.kind == KindSigned:
		return float64(int64(f.whole(data))), nil
	case f.whole != nil:
		return float64(f.whole(data)), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNotNumeric, string(v.DataType))
}

// Uint decodes unsigned integer and flag tags.
func (v Value) Uint() (uint64, error) {
	f, data, err := v.payload()
	if err != nil {
		return 0, err
	}
	if f.kind != KindUnsigned && f.kind != KindFlags {
		return 0, fmt.Errorf("%w: %q is not unsigned", ErrNotNumeric, string(v.DataType))
	}
	return f.whole(data), nil
}

// Int decodes signed, unsigned and flag tags.
func (v Value) Int() (int64, error) {
	f, data, err := v.payload()
	if err != nil {
		return 0, err
	}
	if f.whole == nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrNotNumeric, string(v.DataType))
	}
	n := f.whole(data)
	if f.kind != KindSigned && n > math.MaxInt64 {
		return 0, fmt.Errorf("smc: %q value %d overflows int64", string(v.DataType), n)
	}
	return int64(n), nil
}

// Text returns the payload of a ch8* value. It never reads past DataSize.
func (v Value) Text() (string, error) {
	f, data, err := v.payload()
	if err != nil {
		return "", err
	}
	if f.kind != KindText {
		return "", fmt.Errorf("%w: %q", ErrNotText, string(v.DataType))
	}
	return string(data), nil
}

// Hex dumps the meaningful bytes as "0x" followed by space separated pairs.
func (v Value) Hex() string {
	var sb strings.Builder
	sb.WriteString("0x")
	for i, b := range v.Data() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}

// String renders the value for display: one decimal for fixed point and
// floats, plain integers, text verbatim. Anything that fails to decode
// falls back to Hex.
func (v Value) String() string {
	switch v.Kind() {
	case KindFixed, KindFloat:
		if f, err := v.Float(); err == nil {
			return fmt.Sprintf("%.1f", f)
		}
	case KindSigned:
		if n, err := v.Int(); err == nil {
			return fmt.Sprintf("%d", n)
		}
	case KindUnsigned, KindFlags:
		if n, err := v.Uint(); err == nil {
			return fmt.Sprintf("%d", n)
		}
	case KindText:
		if s, err := v.Text(); err == nil {
			return s
		}
	}
	return v.Hex()
}
