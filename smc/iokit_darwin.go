//go:build darwin && cgo

package smc

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation

#include <IOKit/IOKitLib.h>
#include <mach/mach.h>

// Locate the single AppleSMC service and open a user client on it.
static kern_return_t smc_open(io_connect_t *conn) {
    io_iterator_t iterator;
    kern_return_t result = IOServiceGetMatchingServices(MACH_PORT_NULL, IOServiceMatching("AppleSMC"), &iterator);
    if (result != KERN_SUCCESS) {
        return result;
    }

    io_object_t device = IOIteratorNext(iterator);
    IOObjectRelease(iterator);
    if (device == 0) {
        return kIOReturnNotFound;
    }

    result = IOServiceOpen(device, mach_task_self(), 0, conn);
    IOObjectRelease(device);
    return result;
}

static kern_return_t smc_call(io_connect_t conn, uint32_t selector, const void *in, void *out, size_t size) {
    size_t outSize = size;
    return IOConnectCallStructMethod(conn, selector, in, size, out, &outSize);
}
*/
import "C"
import (
	"fmt"
	"unsafe"
)

type iokitChannel struct {
	conn C.io_connect_t
}

// Open connects to the AppleSMC service. The returned Conn owns the
// connection until Close.
func Open() (*Conn, error) {
	var conn C.io_connect_t
	if kr := C.smc_open(&conn); kr != 0 {
		return nil, fmt.Errorf("%w: %w", ErrChannelUnavailable, &ChannelError{Status: int32(kr)})
	}
	return NewConn(&iokitChannel{conn: conn}), nil
}

func (ch *iokitChannel) Call(selector uint32, in, out *KeyData) error {
	kr := C.smc_call(
		ch.conn,
		C.uint32_t(selector),
		unsafe.Pointer(in),
		unsafe.Pointer(out),
		C.size_t(unsafe.Sizeof(*in)),
	)
	if kr != 0 {
		return &ChannelError{Status: int32(kr)}
	}
	return nil
}

func (ch *iokitChannel) Close() error {
	if kr := C.IOServiceClose(ch.conn); kr != 0 {
		return &ChannelError{Status: int32(kr)}
	}
	return nil
}
