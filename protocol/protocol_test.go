package protocol

import "testing"

// TestAckSymmetry checks P1: every ack constant equals its operation
// ORed with AckBit, except the AckWakeup handshake.
func TestAckSymmetry(t *testing.T) {
	cases := []struct {
		name string
		op   uint8
		ack  uint8
	}{
		{"Ble.On", BleOn, BleAckOn},
		{"Ble.Off", BleOff, BleAckOff},
		{"Ble.SaveHost", BleSaveHost, BleAckSaveHost},
		{"Ble.ConnectHost", BleConnectHost, BleAckConnectHost},
		{"Ble.DeleteHost", BleDeleteHost, BleAckDeleteHost},
		{"Ble.HostListQuery", BleHostListQuery, BleAckHostListQuery},
		{"Ble.Broadcast", BleBroadcast, BleAckBroadcast},
		{"Ble.Battery", BleBattery, BleAckBattery},
		{"Ble.CurrentHostQuery", BleCurrentHostQuery, BleAckCurrentHostQuery},
		{"Ble.LegacyMode", BleLegacyMode, BleAckLegacyMode},
		{"Keyboard.KeyReport", KeyboardKeyReport, KeyboardAckKeyReport},
		{"Led.ThemeMode", LedThemeMode, LedAckThemeMode},
		{"Led.ConfigCmd", LedConfigCmd, LedAckConfigCmd},
		{"Led.SetIndividualKeys", LedSetIndividualKeys, LedAckSetIndividualKeys},
		{"System.GetId", SystemGetId, SystemAckGetId},
		{"System.IsSyncCode", SystemIsSyncCode, SystemAckIsSyncCode},
		{"Macro.SyncMacro", MacroSyncMacro, MacroAckSyncMacro},
	}

	for _, c := range cases {
		if c.ack != c.op|AckBit {
			t.Errorf("%s: ack = %d, want %d|0x80 = %d", c.name, c.ack, c.op, c.op|AckBit)
		}
	}
}

func TestAckWakeupIsException(t *testing.T) {
	if BleAckWakeup == BleOn|AckBit {
		t.Fatalf("AckWakeup should not coincide with an op|0x80 ack")
	}

	if BleAckWakeup != 170 {
		t.Fatalf("AckWakeup = %d, want 170", BleAckWakeup)
	}
}

func TestMsgTypeRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		mt := MsgType(i)
		if uint8(mt) != uint8(i) {
			t.Fatalf("MsgType(%d) did not round-trip", i)
		}
	}
}
