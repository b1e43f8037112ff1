//go:build !darwin || !cgo

package smc

import "fmt"

// Open always fails: the SMC is only reachable through IOKit, which needs
// macOS and cgo.
func Open() (*Conn, error) {
	return nil, fmt.Errorf("%w: AppleSMC requires macOS built with cgo", ErrChannelUnavailable)
}
