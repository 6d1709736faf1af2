// Package serial implements the framed transport shared by the LED and
// Bluetooth companion links: a DmaUsart capability interface, a Serial
// framing layer that batches outgoing frames into one DMA burst, and a
// Transfer two-stage receive state machine (header, then body).
package serial

import (
	"errors"

	"github.com/usbarmory/tamago/dma"

	"github.com/keyboardcore/firmware/protocol"
)

// ErrWouldBlock is returned when a send cannot proceed immediately because
// the tx DMA channel is busy, or (Bluetooth only) a wakeup ack is still
// outstanding. The caller logs and drops it; the next tick or transfer
// completion retries naturally (spec §5, §7).
var ErrWouldBlock = errors.New("serial: would block")

// HeaderSize is the length, in bytes, of the fixed first stage of every
// receive: msg_type and data_len+1.
const HeaderSize = 2

// DmaUsart is the set of per-peripheral DMA primitives a Serial is built on.
// It is implemented once for the LED UART and once for the Bluetooth UART
// (package dmauart); the two differ only in how Send/AckWakeup behave.
type DmaUsart interface {
	// IsReceivePending reports whether the rx DMA channel has signalled
	// transfer-complete since it was last consumed.
	IsReceivePending() bool

	// Receive clears the pending flag, disables the rx channel, and
	// re-arms it for length bytes into the memory at bufAddr.
	Receive(length int, bufAddr uint32)

	// IsSendReady reports whether the tx DMA channel is idle, or (BT
	// only) a send is staged and waiting on a wakeup ack.
	IsSendReady() bool

	// Send arms a transmission of length bytes starting at bufAddr. The
	// LED UART starts it immediately; the Bluetooth UART stages it and
	// pulses the wake line, deferring the DMA enable until AckWakeup.
	Send(bufAddr uint32, length int)

	// AckWakeup enables the pre-armed tx DMA using the previously
	// recorded pending length. Only meaningful on the Bluetooth UART.
	AckWakeup()

	// TxInterrupt handles the tx DMA "transfer complete" flag: clears it
	// and disables the channel.
	TxInterrupt()
}

// Serial frames outgoing messages and hands off incoming bytes to Transfer.
type Serial struct {
	usart DmaUsart

	sendBufAddr uint32
	sendBuffer  []byte
	sendPos     int
}

// New constructs a Serial over usart, reserving a DMA-addressable send
// buffer of sendBufferSize bytes (statically allocated for the device's
// lifetime, per spec §3 "Lifecycles").
func New(usart DmaUsart, sendBufferSize int) *Serial {
	addr, buf := dma.Reserve(sendBufferSize, 0)

	return &Serial{
		usart:       usart,
		sendBufAddr: addr,
		sendBuffer:  buf,
	}
}

// Usart returns the underlying DmaUsart, for callers that must reach
// through to peripheral-specific operations.
func (s *Serial) Usart() DmaUsart {
	return s.usart
}

// Receive arms a header-stage rx of HeaderSize bytes into rxBuffer and
// returns a Transfer bound to it, in ReceiveStage Header.
func (s *Serial) Receive(rxBufAddr uint32, rxBuffer []byte) *Transfer {
	s.usart.Receive(HeaderSize, rxBufAddr)

	return &Transfer{
		usart:   s.usart,
		addr:    rxBufAddr,
		buffer:  rxBuffer,
		stage:   stageHeader,
		pending: HeaderSize,
	}
}

// Send appends a frame to the send buffer and arms (or re-stages) a
// transmission. It returns ErrWouldBlock if the usart isn't ready or the
// frame would overflow the send buffer; batching (on links where Send
// defers the DMA enable, i.e. Bluetooth) lets multiple Send calls append to
// the same in-flight buffer between a wake pulse and its ack.
func (s *Serial) Send(msgType protocol.MsgType, operation uint8, data []byte) error {
	frameLen := 3 + len(data)

	if !s.usart.IsSendReady() || s.sendPos+frameLen > len(s.sendBuffer) {
		return ErrWouldBlock
	}

	pos := s.sendPos
	s.sendBuffer[pos] = uint8(msgType)
	s.sendBuffer[pos+1] = uint8(1 + len(data))
	s.sendBuffer[pos+2] = operation
	copy(s.sendBuffer[pos+3:pos+frameLen], data)

	s.sendPos += frameLen

	s.usart.Send(s.sendBufAddr, s.sendPos)

	return nil
}

// TxInterrupt handles tx DMA completion: resets the send cursor and
// delegates to the usart.
func (s *Serial) TxInterrupt() {
	s.sendPos = 0
	s.usart.TxInterrupt()
}

type receiveStage int

const (
	stageHeader receiveStage = iota
	stageBody
)

// Transfer is the two-stage receive state machine bound to one rx buffer:
// it reads a HeaderSize header, then a body whose length is taken from the
// header's second byte, and is then terminal. At most one Transfer is ever
// outstanding per Serial at a time (I2, I9); the owning driver holds it in
// an optional field and replaces it only via the immediate re-arm after
// Finish().
type Transfer struct {
	usart   DmaUsart
	addr    uint32
	buffer  []byte
	stage   receiveStage
	pending int
}

// Poll advances the state machine. It returns ErrWouldBlock until the
// current stage's DMA transfer has completed; once the body stage
// completes it returns nil and the Transfer becomes terminal (call
// Finish to recover the buffer).
func (t *Transfer) Poll() error {
	if !t.usart.IsReceivePending() {
		return ErrWouldBlock
	}

	switch t.stage {
	case stageHeader:
		bodyLen := int(t.buffer[1])
		t.usart.Receive(bodyLen, t.addr+HeaderSize)
		t.stage = stageBody
		t.pending = bodyLen

		return ErrWouldBlock
	default: // stageBody
		return nil
	}
}

// Finish consumes the (terminal) Transfer and returns its backing buffer,
// whose contents are a complete frame: buffer[0] = msg_type, buffer[1] =
// data_len+1, buffer[2] = operation, buffer[3:3+buffer[1]-1] = payload.
func (t *Transfer) Finish() []byte {
	return t.buffer
}

// Decode parses a complete frame out of buf, as produced by Finish.
func Decode(buf []byte) protocol.Message {
	dataLen := int(buf[1]) - 1

	return protocol.Message{
		MsgType:   protocol.MsgType(buf[0]),
		Operation: buf[2],
		Data:      buf[3 : 3+dataLen],
	}
}
