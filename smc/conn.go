package smc

// Channel is an open connection to the SMC user client. Call sends one
// request frame and fills out with the response.
type Channel interface {
	Call(selector uint32, in, out *KeyData) error
	Close() error
}

// Conn reads keys over a Channel. It is not safe for concurrent use; the
// controller protocol needs two dependent round trips per key.
type Conn struct {
	ch Channel
}

// NewConn wraps an already open channel.
func NewConn(ch Channel) *Conn {
	return &Conn{ch: ch}
}

// Close releases the underlying channel.
func (c *Conn) Close() error {
	return c.ch.Close()
}

// call issues one request. Both frames start zeroed so nothing from an
// earlier, longer read can leak into a shorter one.
func (c *Conn) call(op string, key Key, in *KeyData) (KeyData, error) {
	var out KeyData
	if err := c.ch.Call(KernelIndexSMC, in, &out); err != nil {
		return KeyData{}, &ReadError{Op: op, Key: key, Err: err}
	}
	if out.Result != ResultSuccess {
		return KeyData{}, &ReadError{Op: op, Key: key, Err: &ResultError{Code: out.Result}}
	}
	return out, nil
}

// ReadKeyInfo asks the controller for the size and type of key.
func (c *Conn) ReadKeyInfo(key Key) (KeyInfo, error) {
	in := KeyData{Key: key, Data8: CmdReadKeyInfo}
	out, err := c.call("read key info", key, &in)
	if err != nil {
		return KeyInfo{}, err
	}
	return out.KeyInfo, nil
}

// Read performs the two step read of key: key info first, then the bytes
// call carrying the size learned in the first step.
func (c *Conn) Read(key Key) (Value, error) {
	info, err := c.ReadKeyInfo(key)
	if err != nil {
		return Value{}, err
	}

	in := KeyData{Key: key, Data8: CmdReadBytes}
	in.KeyInfo.DataSize = info.DataSize
	out, err := c.call("read bytes", key, &in)
	if err != nil {
		return Value{}, err
	}

	return Value{
		Key:      key,
		DataSize: info.DataSize,
		DataType: info.Type(),
		Bytes:    out.Bytes,
	}, nil
}

// ReadKey parses name and reads it.
func (c *Conn) ReadKey(name string) (Value, error) {
	key, err := ParseKey(name)
	if err != nil {
		return Value{}, err
	}
	return c.Read(key)
}

// KeyAtIndex returns the key stored at position i of the controller's key table.
func (c *Conn) KeyAtIndex(i uint32) (Key, error) {
	in := KeyData{Data8: CmdReadIndex, Data32: i}
	out, err := c.call("read index", 0, &in)
	if err != nil {
		return 0, err
	}
	return out.Key, nil
}

// KeyCount reads #KEY, the number of keys the controller exposes.
func (c *Conn) KeyCount() (uint32, error) {
	v, err := c.Read(KeyTotal)
	if err != nil {
		return 0, err
	}
	n, err := v.Uint()
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// Walk visits keys 0 through total-1 in index order. total is usually
// what KeyCount returned. A key that cannot be resolved or read is passed
// to fn with its error and the walk moves on.
func (c *Conn) Walk(total uint32, fn func(index uint32, key Key, v Value, err error)) {
	for i := uint32(0); i < total; i++ {
		key, err := c.KeyAtIndex(i)
		if err != nil {
			fn(i, 0, Value{}, err)
			continue
		}
		v, err := c.Read(key)
		fn(i, key, v, err)
	}
}
