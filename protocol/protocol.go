// Package protocol defines the wire message kinds and per-kind operation
// codes spoken between the core MCU and its two companion MCUs (LED
// controller, Bluetooth module) over the framed serial transport.
package protocol

// MsgType identifies the kind of a Message. Unknown byte values round-trip
// through MsgType(n) unchanged; there is no validation on decode.
type MsgType uint8

const (
	Reserved MsgType = iota
	Error
	System
	Ack
	Reboot
	Macro
	Ble
	Keyboard
	Keyup
	Led
	FwInfo
	FwUp
	CustomLed
	CustomKey
)

// AckBit marks a reply from a companion MCU: ack_for(op) = op | AckBit.
const AckBit uint8 = 0x80

// AckFor returns the acknowledgement operation code for op.
func AckFor(op uint8) uint8 {
	return op | AckBit
}

// Ble operation codes.
const (
	BleOn                uint8 = 1
	BleOff               uint8 = 2
	BleSaveHost          uint8 = 3
	BleConnectHost       uint8 = 4
	BleDeleteHost        uint8 = 5
	BleHostListQuery     uint8 = 6
	BleBroadcast         uint8 = 7
	BleBattery           uint8 = 8
	BleAckOk             uint8 = 9
	BleAckFail           uint8 = 10
	BleCurrentHostQuery  uint8 = 11
	BleLegacyMode        uint8 = 12
	BlePair              uint8 = 13
	BleDisconnect        uint8 = 14
	// BleAckWakeup is the sole handshake operation that does not follow
	// the op|AckBit convention.
	BleAckWakeup uint8 = 170
)

var (
	BleAckOn               = AckFor(BleOn)
	BleAckOff              = AckFor(BleOff)
	BleAckSaveHost         = AckFor(BleSaveHost)
	BleAckConnectHost      = AckFor(BleConnectHost)
	BleAckDeleteHost       = AckFor(BleDeleteHost)
	BleAckHostListQuery    = AckFor(BleHostListQuery)
	BleAckBroadcast        = AckFor(BleBroadcast)
	BleAckBattery          = AckFor(BleBattery)
	BleAckCurrentHostQuery = AckFor(BleCurrentHostQuery)
	BleAckLegacyMode       = AckFor(BleLegacyMode)
)

// Keyboard operation codes.
const (
	KeyboardKeyReport          uint8 = 1
	KeyboardDownloadUserLayout uint8 = 2
	KeyboardSetLayoutId        uint8 = 3
	KeyboardGetLayoutId        uint8 = 4
	KeyboardUpUserLayout       uint8 = 5
)

var (
	KeyboardAckKeyReport          = AckFor(KeyboardKeyReport)
	KeyboardAckDownloadUserLayout = AckFor(KeyboardDownloadUserLayout)
	KeyboardAckSetLayoutId        = AckFor(KeyboardSetLayoutId)
	KeyboardAckGetLayoutId        = AckFor(KeyboardGetLayoutId)
	KeyboardAckUpUserLayout       = AckFor(KeyboardUpUserLayout)
)

// Led operation codes.
const (
	LedThemeMode          uint8 = 1
	LedThemeSwitch        uint8 = 2
	LedUserStaticTheme    uint8 = 3
	LedBleConfig          uint8 = 4
	LedConfigCmd          uint8 = 5
	LedMusic              uint8 = 6
	LedKey                uint8 = 7
	LedGetUsedThemeId     uint8 = 8
	LedGetUserStaticTheme uint8 = 9
	LedGetUserStaticCrcId uint8 = 10
	LedSetIndividualKeys  uint8 = 11
	LedGetThemeId         uint8 = 12
)

var (
	LedAckThemeMode          = AckFor(LedThemeMode)
	LedAckThemeSwitch        = AckFor(LedThemeSwitch)
	LedAckUserStaticTheme    = AckFor(LedUserStaticTheme)
	LedAckBleConfig          = AckFor(LedBleConfig)
	LedAckConfigCmd          = AckFor(LedConfigCmd)
	LedAckMusic              = AckFor(LedMusic)
	LedAckKey                = AckFor(LedKey)
	LedAckGetUsedThemeId     = AckFor(LedGetUsedThemeId)
	LedAckGetUserStaticTheme = AckFor(LedGetUserStaticTheme)
	LedAckGetUserStaticCrcId = AckFor(LedGetUserStaticCrcId)
	LedAckSetIndividualKeys  = AckFor(LedSetIndividualKeys)
)

// System operation codes.
const (
	SystemGetId       uint8 = 1
	SystemIsSyncCode  uint8 = 8
	SystemSetSyncCode uint8 = 9
)

var (
	SystemAckGetId       = AckFor(SystemGetId)
	SystemAckIsSyncCode  = AckFor(SystemIsSyncCode)
	SystemAckSetSyncCode = AckFor(SystemSetSyncCode)
)

// Macro operation codes.
const (
	MacroSyncMacro uint8 = 5
)

var MacroAckSyncMacro = AckFor(MacroSyncMacro)

// Message is a decoded wire message: a kind, an 8-bit operation code, and up
// to 255 bytes of payload.
type Message struct {
	MsgType   MsgType
	Operation uint8
	Data      []byte
}

// PerKeyLedOff/On/Flash are the Mode byte values of a SetIndividualKeys
// record ([KeyIndex, R, G, B, Mode]).
const (
	PerKeyLedOff byte = iota
	PerKeyLedOn
	PerKeyLedFlash
)

// PerKeyLedMagic is the first byte of a Led.SetIndividualKeys payload.
const PerKeyLedMagic byte = 0xCA

// Device identity constants used in the System.GetId reply.
const (
	DeviceTypeKeyboard   uint8 = 1
	DeviceModelAnnePro   uint8 = 2
)
