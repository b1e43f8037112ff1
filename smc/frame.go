package smc

// Selector used for every struct method call on the AppleSMC user client.
const KernelIndexSMC uint32 = 2

// Sub-commands carried in KeyData.Data8.
const (
	CmdReadBytes   uint8 = 5
	CmdReadIndex   uint8 = 8
	CmdReadKeyInfo uint8 = 9
)

// SMC result codes reported in KeyData.Result.
const (
	ResultSuccess     uint8 = 0x00
	ResultFailure     uint8 = 0x01
	ResultKeyNotFound uint8 = 0x84
)

// Version mirrors SMCKeyData_vers_t.
type Version struct {
	Major    uint8
	Minor    uint8
	Build    uint8
	Reserved [1]uint8
	Release  uint16
}

// PLimitData mirrors SMCKeyData_pLimitData_t.
type PLimitData struct {
	Version   uint16
	Length    uint16
	CPUPLimit uint32
	GPUPLimit uint32
	MemPLimit uint32
}

// KeyInfo mirrors SMCKeyData_keyInfo_t.
type KeyInfo struct {
	DataSize       uint32
	DataType       uint32
	DataAttributes uint8
}

// Type returns the type tag as text.
func (ki KeyInfo) Type() DataType {
	return dataTypeOf(ki.DataType)
}

// KeyData is the single request/response frame exchanged with the SMC
// user client. Field order and widths match SMCKeyData_t byte for byte
// (80 bytes), so a pointer to it can be handed to IOKit directly.
// It must not contain Go pointers.
type KeyData struct {
	Key        Key
	Vers       Version
	PLimitData PLimitData
	KeyInfo    KeyInfo
	Result     uint8
	Status     uint8
	Data8      uint8
	Data32     uint32
	Bytes      [32]byte
}
