// Package smc reads registers from the Apple System Management Controller.
//
// Every register is addressed by a four character Key. Reading one takes
// two calls on the AppleSMC user client: the first returns the key's size
// and type tag, the second returns up to 32 bytes of payload. The type tag
// then selects how Value decodes those bytes.
//
//	conn, err := smc.Open()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	celsius, err := conn.Temperature(smc.KeyCPUTemp)
//
// Nothing in this package writes to the controller.
package smc
