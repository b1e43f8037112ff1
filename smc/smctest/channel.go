// Package smctest provides an in-memory SMC for tests.
package smctest

import (
	"errors"
	"fmt"

	"artifactdev/smctemp/smc"
)

// kIOReturnBadArgument
const statusBadArgument int32 = -536870206

// Call is one request observed by the fake.
type Call struct {
	Cmd      uint8
	Key      smc.Key
	Index    uint32
	DataSize uint32
}

type entry struct {
	typ  smc.DataType
	data []byte
}

// Channel implements smc.Channel over a key table. It rejects a bytes
// request that is not immediately preceded by a key info request for the
// same key, the way a test would want a protocol violation surfaced.
type Channel struct {
	keys     map[smc.Key]entry
	order    []smc.Key
	fail     map[smc.Key]error
	failRead map[smc.Key]error
	lastInfo smc.Key
	infoOK   bool

	Calls  []Call
	Closed bool
}

// New returns an empty fake controller.
func New() *Channel {
	return &Channel{
		keys:     make(map[smc.Key]entry),
		fail:     make(map[smc.Key]error),
		failRead: make(map[smc.Key]error),
	}
}

// Set stores a key. Keys are enumerated by index in the order they were set.
func (c *Channel) Set(name string, typ smc.DataType, data ...byte) *Channel {
	k := smc.MustKey(name)
	if _, ok := c.keys[k]; !ok {
		c.order = append(c.order, k)
	}
	c.keys[k] = entry{typ: typ, data: append([]byte(nil), data...)}
	return c
}

// Fail makes every call naming key return err.
func (c *Channel) Fail(name string, err error) *Channel {
	c.fail[smc.MustKey(name)] = err
	return c
}

// FailBytes makes only the bytes request for key return err.
func (c *Channel) FailBytes(name string, err error) *Channel {
	c.failRead[smc.MustKey(name)] = err
	return c
}

// Len is the number of enumerable keys.
func (c *Channel) Len() int { return len(c.order) }

func (c *Channel) Call(selector uint32, in, out *smc.KeyData) error {
	if c.Closed {
		return errors.New("smctest: channel closed")
	}
	c.Calls = append(c.Calls, Call{
		Cmd:      in.Data8,
		Key:      in.Key,
		Index:    in.Data32,
		DataSize: in.KeyInfo.DataSize,
	})
	if selector != smc.KernelIndexSMC {
		return &smc.ChannelError{Status: statusBadArgument}
	}

	switch in.Data8 {
	case smc.CmdReadKeyInfo:
		c.infoOK = false
		if err := c.fail[in.Key]; err != nil {
			return err
		}
		e, ok := c.lookup(in.Key)
		if !ok {
			out.Result = smc.ResultKeyNotFound
			return nil
		}
		out.Key = in.Key
		out.KeyInfo.DataSize = uint32(len(e.data))
		out.KeyInfo.DataType = uint32(smc.MustKey(string(e.typ)))
		c.lastInfo, c.infoOK = in.Key, true
		return nil

	case smc.CmdReadBytes:
		if !c.infoOK || c.lastInfo != in.Key {
			return fmt.Errorf("smctest: bytes requested for %s without key info", in.Key)
		}
		c.infoOK = false
		if err := c.fail[in.Key]; err != nil {
			return err
		}
		if err := c.failRead[in.Key]; err != nil {
			return err
		}
		e, ok := c.lookup(in.Key)
		if !ok {
			out.Result = smc.ResultKeyNotFound
			return nil
		}
		if int(in.KeyInfo.DataSize) != len(e.data) {
			return &smc.ChannelError{Status: statusBadArgument}
		}
		out.Key = in.Key
		copy(out.Bytes[:], e.data)
		return nil

	case smc.CmdReadIndex:
		if int(in.Data32) >= len(c.order) {
			out.Result = smc.ResultFailure
			return nil
		}
		k := c.order[in.Data32]
		if err := c.fail[k]; err != nil {
			return err
		}
		out.Key = k
		return nil
	}

	return &smc.ChannelError{Status: statusBadArgument}
}

// lookup synthesises #KEY from the table size unless it was set explicitly.
func (c *Channel) lookup(k smc.Key) (entry, bool) {
	if e, ok := c.keys[k]; ok {
		return e, true
	}
	if k == smc.KeyTotal {
		n := uint32(len(c.order))
		return entry{typ: "ui32", data: []byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}}, true
	}
	return entry{}, false
}

func (c *Channel) Close() error {
	c.Closed = true
	return nil
}
