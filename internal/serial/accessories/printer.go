// Package accessories provides devices that can be plugged into the
// serial port of the Game Boy.
package accessories

import (
	"fmt"
	"image"

	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// CommandPosition is the position of a byte in a printer packet.
type CommandPosition uint8

const (
	CommandPositionMagic1       CommandPosition = iota // 0x88
	CommandPositionMagic2                              // 0x33
	CommandPositionID                                  // the Command
	CommandPositionCompression                         // bit 0 set when the data is RLE compressed
	CommandPositionLengthLow                           // low byte of the data length
	CommandPositionLengthHigh                          // high byte of the data length
	CommandPositionData                                // data, may be empty
	CommandPositionChecksumLow                         // low byte of the checksum
	CommandPositionChecksumHigh                        // high byte of the checksum
	CommandPositionKeepAlive                           // the printer answers 0x81
	CommandPositionStatus                              // the printer answers its status
)

func (c CommandPosition) String() string {
	switch c {
	case CommandPositionMagic1:
		return "Magic1"
	case CommandPositionMagic2:
		return "Magic2"
	case CommandPositionID:
		return "ID"
	case CommandPositionCompression:
		return "Compression"
	case CommandPositionLengthLow:
		return "LengthLow"
	case CommandPositionLengthHigh:
		return "LengthHigh"
	case CommandPositionData:
		return "Data"
	case CommandPositionChecksumLow:
		return "ChecksumLow"
	case CommandPositionChecksumHigh:
		return "ChecksumHigh"
	case CommandPositionKeepAlive:
		return "KeepAlive"
	case CommandPositionStatus:
		return "Status"
	}
	return fmt.Sprintf("Unknown(%d)", uint8(c))
}

// Command is a command that can be sent to the printer.
type Command = uint8

const (
	// CommandInit clears the print buffer.
	CommandInit Command = 0x01
	// CommandPrint prints the buffer.
	CommandPrint Command = 0x02
	// CommandData appends a band of tiles to the buffer.
	CommandData Command = 0x04
	// CommandStatus queries the status of the printer.
	CommandStatus Command = 0x0F
)

// status bits
const (
	StatusChecksumError = types.Bit0
	StatusPrinting      = types.Bit1
	StatusImageFull     = types.Bit2
	StatusUnprocessed   = types.Bit3
)

const (
	// bandSize is the size of a CommandData packet, 2 rows of 20 tiles.
	bandSize = 0x280
	// maxBands is the number of bands that fit in the print buffer.
	maxBands = 9
	// Width of a print, in pixels.
	Width = 160
)

// Printer emulates the Game Boy Printer. Prints are decoded into
// greyscale images, and handed to OnPrint.
type Printer struct {
	byteToSend        uint8
	byteBeingReceived uint8
	counter           uint8

	position    CommandPosition
	id          Command
	compression bool
	length      uint16
	packet      []byte
	checksum    uint16
	received    uint16 // checksum received from the Game Boy

	status     uint8
	busyPolls  int // status polls before a print completes
	buffer     []byte
	lastPrint  *image.Gray
	printCount int

	// OnPrint is called with every completed print.
	OnPrint func(img *image.Gray)

	log log.Logger
}

// NewPrinter returns a new Printer.
func NewPrinter(logger log.Logger) *Printer {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Printer{log: logger}
}

// Send shifts out the next bit of the byte being sent.
func (p *Printer) Send() bool {
	bit := p.byteToSend&types.Bit7 != 0
	p.byteToSend <<= 1

	return bit
}

// Receive shifts in a bit from the Game Boy.
func (p *Printer) Receive(bit bool) {
	p.byteBeingReceived <<= 1
	if bit {
		p.byteBeingReceived |= types.Bit0
	}

	if p.counter++; p.counter == 8 {
		p.onReceive(p.byteBeingReceived)
		p.byteBeingReceived = 0
		p.counter = 0
	}
}

// onReceive advances the packet state machine by a single byte,
// preparing the byte sent back during the next transfer.
func (p *Printer) onReceive(b byte) {
	p.byteToSend = 0

	switch p.position {
	case CommandPositionMagic1:
		if b != 0x88 {
			return
		}
	case CommandPositionMagic2:
		if b != 0x33 {
			p.position = CommandPositionMagic1
			return
		}
		p.checksum = 0
		p.packet = p.packet[:0]
	case CommandPositionID:
		p.id = b
		p.checksum += uint16(b)
	case CommandPositionCompression:
		p.compression = b&types.Bit0 != 0
		p.checksum += uint16(b)
	case CommandPositionLengthLow:
		p.length = uint16(b)
		p.checksum += uint16(b)
	case CommandPositionLengthHigh:
		p.length |= uint16(b) << 8
		p.checksum += uint16(b)
		if p.length == 0 {
			p.position = CommandPositionChecksumLow
			return
		}
	case CommandPositionData:
		p.packet = append(p.packet, b)
		p.checksum += uint16(b)
		if uint16(len(p.packet)) < p.length {
			return
		}
	case CommandPositionChecksumLow:
		p.received = uint16(b)
	case CommandPositionChecksumHigh:
		p.received |= uint16(b) << 8
		p.byteToSend = 0x81
	case CommandPositionKeepAlive:
		if p.received != p.checksum {
			p.log.Warnf("printer: checksum mismatch, expected 0x%04X got 0x%04X", p.checksum, p.received)
			p.status |= StatusChecksumError
		} else {
			p.status &^= StatusChecksumError
			p.runCommand()
		}
		p.byteToSend = p.status
	case CommandPositionStatus:
		p.position = CommandPositionMagic1
		return
	}

	p.position++
}

// runCommand executes the packet that has just been received.
func (p *Printer) runCommand() {
	switch p.id {
	case CommandInit:
		p.buffer = p.buffer[:0]
		p.status = 0
		p.busyPolls = 0
	case CommandData:
		data := p.packet
		if p.compression {
			data = decompress(data)
		}
		if len(data) == 0 {
			// end of data
			return
		}
		if len(p.buffer)+len(data) > bandSize*maxBands {
			p.log.Warnf("printer: buffer full, dropping %d bytes", len(data))
			p.status |= StatusImageFull
			return
		}
		p.buffer = append(p.buffer, data...)
		p.status |= StatusUnprocessed
	case CommandPrint:
		if len(p.packet) != 4 {
			p.log.Debugf("printer: print command with %d bytes", len(p.packet))
			return
		}
		img := p.render(p.packet[2])
		p.buffer = p.buffer[:0]
		p.status = StatusPrinting | StatusImageFull
		p.busyPolls = 2
		p.lastPrint = img
		p.printCount++
		p.log.Infof("printer: printed %dx%d image", img.Rect.Dx(), img.Rect.Dy())
		if p.OnPrint != nil {
			p.OnPrint(img)
		}
	case CommandStatus:
		if p.status&StatusPrinting != 0 {
			if p.busyPolls--; p.busyPolls <= 0 {
				p.status &^= StatusPrinting | StatusImageFull
			}
		}
	default:
		p.log.Debugf("printer: unknown command 0x%02X", p.id)
	}
}

// render decodes the tiles in the print buffer into an image, mapping
// the 2-bit colours through the given palette.
func (p *Printer) render(palette uint8) *image.Gray {
	tiles := len(p.buffer) / 16
	height := tiles / 20 * 8
	img := image.NewGray(image.Rect(0, 0, Width, height))

	for t := 0; t < tiles/20*20; t++ {
		tile := p.buffer[t*16 : t*16+16]
		tx, ty := t%20*8, t/20*8
		for y := 0; y < 8; y++ {
			low, high := tile[y*2], tile[y*2+1]
			for x := 0; x < 8; x++ {
				colour := low>>(7-x)&1 | (high>>(7-x)&1)<<1
				shade := palette >> (colour * 2) & 3
				img.Pix[(ty+y)*img.Stride+tx+x] = 0xFF - shade*0x55
			}
		}
	}

	return img
}

// LastPrint returns the most recently printed image, or nil.
func (p *Printer) LastPrint() *image.Gray {
	return p.lastPrint
}

// PrintCount returns the number of completed prints.
func (p *Printer) PrintCount() int {
	return p.printCount
}

// decompress expands the run length encoding used by CommandData
// packets. A control byte with bit 7 set repeats the next byte
// (c&0x7F)+2 times, otherwise the next c+1 bytes are copied.
func decompress(data []byte) []byte {
	out := make([]byte, 0, bandSize)
	for i := 0; i < len(data); {
		c := data[i]
		i++
		if c&types.Bit7 != 0 {
			if i >= len(data) {
				break
			}
			for n := 0; n < int(c&0x7F)+2; n++ {
				out = append(out, data[i])
			}
			i++
			continue
		}
		n := int(c) + 1
		if i+n > len(data) {
			n = len(data) - i
		}
		out = append(out, data[i:i+n]...)
		i += n
	}
	return out
}
