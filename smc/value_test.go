package smc

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func value(typ DataType, data ...byte) Value {
	v := Value{DataType: typ, DataSize: uint32(len(data))}
	copy(v.Bytes[:], data)
	return v
}

func TestFloatVectors(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
	}{
		{"sp78 32", value("sp78", 0x20, 0x00), 32.0},
		{"sp78 22", value("sp78", 0x16, 0x00), 22.0},
		{"sp78 half", value("sp78", 0x16, 0x80), 22.5},
		{"sp78 negative", value("sp78", 0xff, 0x00), -1.0},
		{"sp5a", value("sp5a", 0x04, 0x00), 1.0},
		{"sp5a negative", value("sp5a", 0xfc, 0x00), -1.0},
		{"spf0", value("spf0", 0x00, 0x2a), 42.0},
		{"fpe2 one", value("fpe2", 0x00, 0x04), 1.0},
		{"fpe2 rpm", value("fpe2", 0x1f, 0x40), 2000.0},
		{"fpe2 high bit", value("fpe2", 0x80, 0x00), 8192.0},
		{"fp88", value("fp88", 0x01, 0x80), 1.5},
		{"ui8", value("ui8 ", 0x07), 7},
		{"ui16", value("ui16", 0x01, 0x00), 256},
		{"ui32", value("ui32", 0x00, 0x01, 0x00, 0x00), 65536},
		{"si16 negative", value("si16", 0xff, 0xfe), -2},
		{"si8 negative", value("si8 ", 0x80), -128},
		{"flag", value("flag", 0x01), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Float()
			if err != nil {
				t.Fatalf("Float() err=%v", err)
			}
			if got != tt.want {
				t.Fatalf("Float() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFloatNativeByteOrder(t *testing.T) {
	var b [8]byte
	binary.NativeEndian.PutUint32(b[:4], math.Float32bits(1234.5))
	got, err := value("flt ", b[:4]...).Float()
	if err != nil || got != 1234.5 {
		t.Fatalf("flt Float() = %v, %v", got, err)
	}

	binary.NativeEndian.PutUint64(b[:], math.Float64bits(-0.25))
	got, err = value("dbl ", b[:]...).Float()
	if err != nil || got != -0.25 {
		t.Fatalf("dbl Float() = %v, %v", got, err)
	}
}

func TestUnknownTypeFails(t *testing.T) {
	v := value("zzzz", 0x16, 0x00)
	if _, err := v.Float(); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Float() err=%v, want ErrUnknownType", err)
	}
	if _, err := v.Int(); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Int() err=%v, want ErrUnknownType", err)
	}
	if _, err := v.Text(); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Text() err=%v, want ErrUnknownType", err)
	}
	if v.Kind() != KindUnknown {
		t.Fatalf("Kind() = %v", v.Kind())
	}
	if got := v.String(); got != "0x16 00" {
		t.Fatalf("String() = %q, want hex dump", got)
	}
}

func TestShortPayloadFails(t *testing.T) {
	var se *SizeError
	if _, err := value("sp78", 0x16).Float(); !errors.As(err, &se) {
		t.Fatalf("err=%v, want SizeError", err)
	}
	if se.Want != 2 || se.Got != 1 {
		t.Fatalf("SizeError = %+v", se)
	}
}

func TestTextStopsAtDataSize(t *testing.T) {
	v := value("ch8*", 'M', 'a', 'c')
	v.Bytes[3] = 'X' // beyond DataSize
	s, err := v.Text()
	if err != nil {
		t.Fatalf("Text() err=%v", err)
	}
	if s != "Mac" {
		t.Fatalf("Text() = %q, want %q", s, "Mac")
	}
	if _, err := v.Float(); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("Float() on text err=%v", err)
	}
	if _, err := value("sp78", 1, 2).Text(); !errors.Is(err, ErrNotText) {
		t.Fatalf("Text() on number err=%v", err)
	}
}

func TestFlagsHaveBothViews(t *testing.T) {
	v := value("hex_", 0x01, 0x02)
	n, err := v.Uint()
	if err != nil || n != 0x0102 {
		t.Fatalf("Uint() = %d, %v", n, err)
	}
	if got := v.Hex(); got != "0x01 02" {
		t.Fatalf("Hex() = %q", got)
	}
	if v.Kind() != KindFlags {
		t.Fatalf("Kind() = %v", v.Kind())
	}
}

func TestFlagsTooWide(t *testing.T) {
	v := value("hex_", make([]byte, 9)...)
	if _, err := v.Uint(); err == nil {
		t.Fatal("expected error for 9 byte flags")
	}
	if got := v.String(); got != v.Hex() {
		t.Fatalf("String() = %q, want hex fallback", got)
	}
}

func TestIntOverflow(t *testing.T) {
	v := value("hex_", 0x80, 0, 0, 0, 0, 0, 0, 0)
	if _, err := v.Int(); err == nil {
		t.Fatal("expected overflow error")
	}
	if n, err := v.Uint(); err != nil || n != 1<<63 {
		t.Fatalf("Uint() = %d, %v", n, err)
	}
}

func TestUintRejectsSigned(t *testing.T) {
	if _, err := value("si16", 0, 1).Uint(); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("err=%v", err)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{value("sp78", 0x2d, 0x33), "45.2"},
		{value("fpe2", 0x1f, 0x40), "2000.0"},
		{value("ui8 ", 0x02), "2"},
		{value("si16", 0xff, 0xff), "-1"},
		{value("ch8*", 'a', 'b'), "ab"},
		{value("flag", 0x01), "1"},
		{value("{fds", 0x00, 0x01), "0x00 01"},
		{value("sp78"), "0x"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String(%q % x) = %q, want %q", tt.v.DataType, tt.v.Data(), got, tt.want)
		}
	}
}

func TestDecodeIsDeterministic(t *testing.T) {
	v := value("sp78", 0x16, 0x00)
	first, _ := v.Float()
	for i := 0; i < 10; i++ {
		got, _ := v.Float()
		if got != first {
			t.Fatalf("decode %d = %v, first = %v", i, got, first)
		}
	}
}

func TestDataClampsToBuffer(t *testing.T) {
	v := Value{DataType: "ch8*", DataSize: 200}
	if n := len(v.Data()); n != 32 {
		t.Fatalf("len(Data()) = %d, want 32", n)
	}
}
