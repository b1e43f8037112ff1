package smc

import (
	"testing"
	"unsafe"
)

func TestParseKeyRoundTrip(t *testing.T) {
	for _, s := range []string{"TC0P", "#KEY", "FNum", "F0Ac", "ui8 ", "ch8*", "    ", "\x00\x01\x02\x7f"} {
		k, err := ParseKey(s)
		if err != nil {
			t.Fatalf("ParseKey(%q) err=%v", s, err)
		}
		if got := k.String(); got != s {
			t.Errorf("ParseKey(%q).String() = %q", s, got)
		}
	}
}

func TestParseKeyPacksBigEndian(t *testing.T) {
	k := MustKey("TC0P")
	if k != 0x54433050 {
		t.Fatalf("TC0P = 0x%08x, want 0x54433050", uint32(k))
	}
}

func TestParseKeyRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short", "TC0"},
		{"long", "TC0PX"},
		{"non-ascii", "TC\xc3\xa9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseKey(tt.in); err == nil {
				t.Fatalf("ParseKey(%q) expected error", tt.in)
			}
		})
	}
}

func TestMustKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustKey("bad")
}

func TestKeyDataLayout(t *testing.T) {
	var kd KeyData
	if got := unsafe.Sizeof(kd); got != 80 {
		t.Fatalf("sizeof KeyData = %d, want 80", got)
	}
	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"vers", unsafe.Offsetof(kd.Vers), 4},
		{"pLimitData", unsafe.Offsetof(kd.PLimitData), 12},
		{"keyInfo", unsafe.Offsetof(kd.KeyInfo), 28},
		{"result", unsafe.Offsetof(kd.Result), 40},
		{"data8", unsafe.Offsetof(kd.Data8), 42},
		{"data32", unsafe.Offsetof(kd.Data32), 44},
		{"bytes", unsafe.Offsetof(kd.Bytes), 48},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offset of %s = %d, want %d", o.name, o.got, o.want)
		}
	}
}

func TestKeyInfoType(t *testing.T) {
	ki := KeyInfo{DataType: uint32(MustKey("sp78"))}
	if ki.Type() != "sp78" {
		t.Fatalf("Type() = %q", ki.Type())
	}
}
