package cartridge

import (
	"encoding/binary"
	"errors"
	"time"
)

const (
	// cyclesPerSecond is the number of machine cycles in a
	// second at normal speed.
	cyclesPerSecond = 1 << 20

	rtcSaveSize = 48

	rtcHalt  = 1 << 6
	rtcCarry = 1 << 7
)

var errRTCSize = errors.New("invalid rtc block")

// rtc is the MBC3 real time clock. It is driven by machine cycles,
// rather than the host clock, so that it stays in step with the
// emulated time.
type rtc struct {
	seconds, minutes, hours uint8
	dayLow, dayHigh         uint8 // dayHigh bit 0 is day bit 8, bit 6 halt, bit 7 carry

	latched [5]uint8
	cycles  uint32

	now func() time.Time
}

func newRTC() *rtc {
	return &rtc{now: time.Now}
}

func (r *rtc) halted() bool {
	return r.dayHigh&rtcHalt != 0
}

func (r *rtc) tick() {
	if r.halted() {
		return
	}
	r.cycles++
	if r.cycles >= cyclesPerSecond {
		r.cycles = 0
		r.tickSecond()
	}
}

func (r *rtc) tickSecond() {
	r.seconds = (r.seconds + 1) & 0x3F
	if r.seconds != 60 {
		return
	}
	r.seconds = 0
	r.minutes = (r.minutes + 1) & 0x3F
	if r.minutes != 60 {
		return
	}
	r.minutes = 0
	r.hours = (r.hours + 1) & 0x1F
	if r.hours != 24 {
		return
	}
	r.hours = 0
	r.dayLow++
	if r.dayLow != 0 {
		return
	}
	if r.dayHigh&0x01 == 0 {
		r.dayHigh |= 0x01
	} else {
		r.dayHigh = r.dayHigh&^0x01 | rtcCarry
	}
}

func (r *rtc) latch() {
	r.latched = [5]uint8{r.seconds, r.minutes, r.hours, r.dayLow, r.dayHigh}
}

func (r *rtc) read(register uint8) uint8 {
	switch register {
	case 0x08:
		return r.latched[0] | 0xC0
	case 0x09:
		return r.latched[1] | 0xC0
	case 0x0A:
		return r.latched[2] | 0xE0
	case 0x0B:
		return r.latched[3]
	case 0x0C:
		return r.latched[4] | 0x3E
	}
	return 0xFF
}

func (r *rtc) write(register, value uint8) {
	switch register {
	case 0x08:
		r.seconds = value & 0x3F
		r.cycles = 0
	case 0x09:
		r.minutes = value & 0x3F
	case 0x0A:
		r.hours = value & 0x1F
	case 0x0B:
		r.dayLow = value
	case 0x0C:
		r.dayHigh = value & 0xC1
	}
}

// marshal encodes the clock as 5 current and 5 latched registers,
// each as a little endian uint32, followed by a 64 bit unix timestamp.
func (r *rtc) marshal() []byte {
	b := make([]byte, rtcSaveSize)
	current := [5]uint8{r.seconds, r.minutes, r.hours, r.dayLow, r.dayHigh}
	for i := 0; i < 5; i++ {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(current[i]))
		binary.LittleEndian.PutUint32(b[20+i*4:], uint32(r.latched[i]))
	}
	binary.LittleEndian.PutUint64(b[40:], uint64(r.now().Unix()))
	return b
}

// unmarshal decodes a block produced by marshal, and advances the
// clock by the wall time that passed since it was saved.
func (r *rtc) unmarshal(b []byte) error {
	if len(b) != rtcSaveSize {
		return errRTCSize
	}
	var current [5]uint8
	for i := 0; i < 5; i++ {
		current[i] = uint8(binary.LittleEndian.Uint32(b[i*4:]))
		r.latched[i] = uint8(binary.LittleEndian.Uint32(b[20+i*4:]))
	}
	r.seconds, r.minutes, r.hours, r.dayLow, r.dayHigh = current[0]&0x3F, current[1]&0x3F, current[2]&0x1F, current[3], current[4]&0xC1
	r.cycles = 0

	saved := int64(binary.LittleEndian.Uint64(b[40:]))
	if elapsed := r.now().Unix() - saved; elapsed > 0 && !r.halted() {
		r.advance(elapsed)
	}
	return nil
}

func (r *rtc) advance(seconds int64) {
	// whole days are applied at once, the rest a second at a time
	days := seconds / 86400
	for i := int64(0); i < seconds%86400; i++ {
		r.tickSecond()
	}
	total := int64(r.dayHigh&0x01)<<8 | int64(r.dayLow)
	total += days
	if total > 0x1FF {
		r.dayHigh |= rtcCarry
		total &= 0x1FF
	}
	r.dayLow = uint8(total)
	r.dayHigh = r.dayHigh&^0x01 | uint8(total>>8)&0x01
}
