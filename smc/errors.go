package smc

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelUnavailable means the AppleSMC service could not be found or opened.
	ErrChannelUnavailable = errors.New("smc: channel unavailable")

	// ErrKeyNotFound is reported by the controller for keys it does not expose.
	ErrKeyNotFound = errors.New("smc: key not found")

	// ErrUnknownType matches every *UnknownTypeError.
	ErrUnknownType = errors.New("smc: unknown data type")

	// ErrNotNumeric is returned when a numeric view is asked of a non-numeric value.
	ErrNotNumeric = errors.New("smc: value has no numeric view")

	// ErrNotText is returned when Text is called on a non-text value.
	ErrNotText = errors.New("smc: value is not text")

	// ErrNoData is returned when a key reads back with a zero data size.
	ErrNoData = errors.New("smc: key returned no data")

	// ErrFlatFanRange is returned by FanPercent when maximum <= minimum.
	ErrFlatFanRange = errors.New("smc: fan maximum is not above minimum")
)

// ChannelError carries the kern_return_t of a rejected IOKit call.
type ChannelError struct {
	Status int32
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("smc: channel call failed: kern_return 0x%08x", uint32(e.Status))
}

// ResultError is a successful channel call whose SMC result byte is not success.
type ResultError struct {
	Code uint8
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("smc: controller returned result 0x%02x", e.Code)
}

// Is lets errors.Is(err, ErrKeyNotFound) match the not-found result code.
func (e *ResultError) Is(target error) bool {
	return target == ErrKeyNotFound && e.Code == ResultKeyNotFound
}

// ReadError records which step of a register read failed.
type ReadError struct {
	// Op is the protocol step: "read key info", "read bytes" or "read index".
	Op  string
	Key Key
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("smc: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// UnknownTypeError is returned by the decoder for a type tag outside the table.
type UnknownTypeError struct {
	Type DataType
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("smc: unknown data type %q", string(e.Type))
}

func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownType }

// SizeError means the payload is shorter than its type tag requires.
type SizeError struct {
	Type DataType
	Want int
	Got  int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("smc: %q needs %d bytes, got %d", string(e.Type), e.Want, e.Got)
}
