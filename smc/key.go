package smc

import "fmt"

// Key addresses one SMC register. The four ASCII characters are packed
// most significant byte first, which is how the controller expects them.
type Key uint32

// ParseKey packs a four character register name into a Key.
func ParseKey(s string) (Key, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("smc: key %q must be exactly 4 characters", s)
	}
	var k Key
	for i := 0; i < 4; i++ {
		c := s[i]
		if c > 0x7F {
			return 0, fmt.Errorf("smc: key %q must contain ASCII characters only", s)
		}
		k = k<<8 | Key(c)
	}
	return k, nil
}

// MustKey is ParseKey for compile-time constants. It panics on a malformed name.
func MustKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// String unpacks the key back into its four characters.
func (k Key) String() string {
	return string([]byte{
		byte(k >> 24),
		byte(k >> 16),
		byte(k >> 8),
		byte(k),
	})
}

// DataType is the four character type tag the controller reports for a key,
// e.g. "sp78" or "ui8 ". Trailing spaces are significant.
type DataType string

func dataTypeOf(word uint32) DataType {
	return DataType(Key(word).String())
}
