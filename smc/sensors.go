package smc

import (
	"fmt"
	"strings"
)

// Well-known keys.
var (
	KeyCPUTemp     = MustKey("TC0P")
	KeyGPUTemp     = MustKey("TG0P")
	KeyAmbientTemp = MustKey("TA0P")
	KeyFanCount    = MustKey("FNum")
	KeyTotal       = MustKey("#KEY")
)

// FanField selects one per-fan register.
type FanField string

const (
	FanActual  FanField = "Ac"
	FanMinimum FanField = "Mn"
	FanMaximum FanField = "Mx"
	FanTarget  FanField = "Tg"
	FanSafe    FanField = "Sf"
	FanID      FanField = "ID"
)

// FanKey builds the F<index><field> key, e.g. F0Ac.
func FanKey(index int, field FanField) (Key, error) {
	if index < 0 || index > 9 {
		return 0, fmt.Errorf("smc: fan index %d out of range 0-9", index)
	}
	if len(field) != 2 {
		return 0, fmt.Errorf("smc: fan field %q must be 2 characters", string(field))
	}
	return ParseKey(fmt.Sprintf("F%d%s", index, field))
}

// Temperature reads key as degrees Celsius.
func (c *Conn) Temperature(key Key) (float64, error) {
	v, err := c.Read(key)
	if err != nil {
		return 0, err
	}
	if v.DataSize == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoData, key)
	}
	return v.Float()
}

// FanCount reads FNum.
func (c *Conn) FanCount() (int, error) {
	v, err := c.Read(KeyFanCount)
	if err != nil {
		return 0, err
	}
	n, err := v.Uint()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// FanReading reads one numeric per-fan register, usually an RPM.
func (c *Conn) FanReading(index int, field FanField) (float64, error) {
	key, err := FanKey(index, field)
	if err != nil {
		return 0, err
	}
	v, err := c.Read(key)
	if err != nil {
		return 0, err
	}
	if v.DataSize == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoData, key)
	}
	return v.Float()
}

// FanName reads the label from F<index>ID. The record starts with four
// bytes of position data followed by the NUL padded name.
func (c *Conn) FanName(index int) (string, error) {
	key, err := FanKey(index, FanID)
	if err != nil {
		return "", err
	}
	v, err := c.Read(key)
	if err != nil {
		return "", err
	}
	data := v.Data()
	if len(data) <= 4 {
		return "", nil
	}
	return strings.TrimRight(string(data[4:]), "\x00 "), nil
}

// Fan is a snapshot of one fan's speeds in RPM.
type Fan struct {
	Index   int
	Name    string
	Actual  float64
	Minimum float64
	Maximum float64
}

// Percent is FanPercent of the snapshot.
func (f Fan) Percent() (float64, error) {
	return FanPercent(f.Actual, f.Minimum, f.Maximum)
}

// Fan reads the name and the actual, minimum and maximum speeds of one fan.
// A missing name is not an error.
func (c *Conn) Fan(index int) (Fan, error) {
	fan := Fan{Index: index}

	name, err := c.FanName(index)
	if err == nil {
		fan.Name = name
	}

	if fan.Actual, err = c.FanReading(index, FanActual); err != nil {
		return fan, err
	}
	if fan.Minimum, err = c.FanReading(index, FanMinimum); err != nil {
		return fan, err
	}
	if fan.Maximum, err = c.FanReading(index, FanMaximum); err != nil {
		return fan, err
	}
	return fan, nil
}

// FanPercent places actual within [minimum, maximum] as 0-100. Speeds below
// the minimum clamp to 0.
func FanPercent(actual, minimum, maximum float64) (float64, error) {
	if maximum <= minimum {
		return 0, ErrFlatFanRange
	}
	rpm := actual - minimum
	if rpm < 0 {
		rpm = 0
	}
	return rpm / (maximum - minimum) * 100, nil
}
