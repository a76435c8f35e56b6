// Package evdev decodes the fixed-size binary records emitted by Linux
// input event devices (/dev/input/event*).
package evdev

import (
	"encoding/binary"
	"io"
)

// Event type classes from the kernel's input subsystem. Only EvKey matters
// here; everything else is passed through for callers to drop.
const (
	EvKey uint16 = 1

	valuePress = 1
)

// recordSize is the wire size of one input_event on 64-bit kernels:
// two int64 time fields, two uint16 fields, one int32 value.
const recordSize = 24

// Event is one decoded input record.
type Event struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// KeyPress reports whether the event is a key going down. Value 0 is a
// release and 2 is auto-repeat; neither counts.
func (e Event) KeyPress() bool {
	return e.Type == EvKey && e.Value == valuePress
}

// Decoder reads input_event records from a byte stream. It is not safe for
// concurrent use.
type Decoder struct {
	r   io.Reader
	buf [recordSize]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next decodes the next record. Any read error, including a truncated final
// record, ends the stream permanently: callers should stop and not retry.
func (d *Decoder) Next() (Event, error) {
	if _, err := io.ReadFull(d.r, d.buf[:]); err != nil {
		return Event{}, err
	}

	b := d.buf[:]
	return Event{
		Sec:   int64(binary.LittleEndian.Uint64(b[0:8])),
		Usec:  int64(binary.LittleEndian.Uint64(b[8:16])),
		Type:  binary.LittleEndian.Uint16(b[16:18]),
		Code:  binary.LittleEndian.Uint16(b[18:20]),
		Value: int32(binary.LittleEndian.Uint32(b[20:24])),
	}, nil
}
