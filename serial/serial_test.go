package serial

import (
	"testing"

	"github.com/keyboardcore/firmware/protocol"
)

// fakeUsart is an in-memory DmaUsart good enough to drive Serial/Transfer
// through their state machines without real hardware.
type fakeUsart struct {
	sendReady bool
	rxPending bool
}

func (f *fakeUsart) IsReceivePending() bool            { return f.rxPending }
func (f *fakeUsart) Receive(length int, bufAddr uint32) {}
func (f *fakeUsart) IsSendReady() bool                 { return f.sendReady }
func (f *fakeUsart) Send(bufAddr uint32, length int)   {}
func (f *fakeUsart) AckWakeup()                        {}
func (f *fakeUsart) TxInterrupt()                      {}

// TestSendFrameLength checks P2: Send produces 3+len(data) bytes whose
// first three bytes are [type, 1+len(data), op].
func TestSendFrameLength(t *testing.T) {
	u := &fakeUsart{sendReady: true}
	s := &Serial{usart: u, sendBuffer: make([]byte, 64)}

	data := []byte{1, 2, 3, 4}

	if err := s.Send(protocol.Led, protocol.LedKey, data); err != nil {
		t.Fatalf("Send: %v", err)
	}

	want := append([]byte{uint8(protocol.Led), uint8(1 + len(data)), protocol.LedKey}, data...)

	if got := s.sendBuffer[:s.sendPos]; string(got) != string(want) {
		t.Fatalf("frame = %v, want %v", got, want)
	}
}

func TestSendWouldBlock(t *testing.T) {
	u := &fakeUsart{sendReady: false}
	s := &Serial{usart: u, sendBuffer: make([]byte, 64)}

	if err := s.Send(protocol.Led, protocol.LedKey, nil); err != ErrWouldBlock {
		t.Fatalf("Send with busy usart: err = %v, want ErrWouldBlock", err)
	}
}

// TestTransferRoundTrip checks P3: a frame laid out as Send writes it can be
// decoded back to the same (type, op, data) after two Poll calls.
func TestTransferRoundTrip(t *testing.T) {
	u := &fakeUsart{}
	s := &Serial{usart: u, sendBuffer: make([]byte, 64)}

	rxBuf := make([]byte, HeaderSize+255)
	tr := s.Receive(0, rxBuf)

	// Simulate the header DMA landing.
	rxBuf[0] = uint8(protocol.Keyboard)
	rxBuf[1] = 9 // data_len+1 = 9 => 8-byte HID report payload
	u.rxPending = true

	if err := tr.Poll(); err != ErrWouldBlock {
		t.Fatalf("header Poll: err = %v, want ErrWouldBlock (stage transition)", err)
	}

	// Simulate the body DMA landing: operation byte, then the payload.
	payload := []byte{0x02, 0, 0x04, 0, 0, 0, 0, 0}
	rxBuf[HeaderSize] = protocol.KeyboardKeyReport
	copy(rxBuf[HeaderSize+1:], payload)
	u.rxPending = true

	if err := tr.Poll(); err != nil {
		t.Fatalf("body Poll: err = %v, want nil", err)
	}

	msg := Decode(tr.Finish())

	if msg.MsgType != protocol.Keyboard {
		t.Errorf("MsgType = %v, want %v", msg.MsgType, protocol.Keyboard)
	}

	if msg.Operation != protocol.KeyboardKeyReport {
		t.Errorf("Operation = %v, want %v", msg.Operation, protocol.KeyboardKeyReport)
	}

	if string(msg.Data) != string(payload) {
		t.Errorf("Data = %v, want %v", msg.Data, payload)
	}
}
