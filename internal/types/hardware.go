package types

// HardwareRegisters is a table of hardware registers, which
// can be read and written to. The table is indexed by the
// address of the hardware register ANDed with 0x007F.
//
// Each Game Boy owns its own table; components register their
// registers on it when they are constructed.
type HardwareRegisters [0x80]*HardwareRegister

// Read returns the value of the hardware register for
// the given address. If the hardware register does not exist,
// or is not readable, it returns 0xFF.
func (h *HardwareRegisters) Read(address uint16) uint8 {
	// is the hardware register the IE register? as the HardwareRegisters
	// table is indexed by the address ANDed with 0x007F, the IE register
	// is at index 0x7F, so we need to check for the IE register separately
	if address == IE {
		return h[0x7F].Read()
	}
	if address == 0xFF7F || h[address&0x007F] == nil {
		return 0xFF
	}
	return h[address&0x007F].Read()
}

// Write writes the given value to the hardware register
// for the given address. If the hardware register does not
// exist, or is not writable, the write is dropped.
func (h *HardwareRegisters) Write(address uint16, value uint8) {
	if address == 0xFF7F || h[address&0x007F] == nil {
		return
	}
	h[address&0x007F].Write(value)
}

// Has reports whether a hardware register has been registered
// for the given address.
func (h *HardwareRegisters) Has(address uint16) bool {
	if address == 0xFF7F {
		return false
	}
	return h[address&0x007F] != nil
}

// RegisterHardware registers a hardware register with the given
// address and read/write functions. The read and write functions
// are optional, and may be nil, in which case the register is
// write-only or read-only, respectively.
func (h *HardwareRegisters) RegisterHardware(address HardwareAddress, write func(v uint8), read func() uint8) {
	h[address&0x007F] = &HardwareRegister{
		address: address,
		write:   write,
		read:    read,
	}
}

// RegisterLatch registers a hardware register that simply stores
// the last value written. Bits set in unused always read back as 1.
// It returns a pointer to the stored value, so that the owning
// component may update read-only bits.
func (h *HardwareRegisters) RegisterLatch(address HardwareAddress, initial, unused uint8) *uint8 {
	value := initial
	h.RegisterHardware(address, func(v uint8) {
		value = v
	}, func() uint8 {
		return value | unused
	})
	return &value
}

// HardwareRegister represents a hardware register of the Game
// Boy. The hardware registers are used to control and
// read the state of the hardware.
type HardwareRegister struct {
	address HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// Address returns the address the register is mapped to.
func (h *HardwareRegister) Address() HardwareAddress {
	return h.address
}

// Read returns the value of the register, or 0xFF
// for write-only registers.
func (h *HardwareRegister) Read() uint8 {
	if h.read != nil {
		return h.read()
	}

	return NoRead()
}

// Write writes the value to the register. Writes to
// read-only registers are ignored.
func (h *HardwareRegister) Write(value uint8) {
	if h.write != nil {
		h.write(value)
	}
}

// NoRead is a convenience function to return a read function that
// always returns 0xFF. This is useful for hardware registers that
// are not readable.
func NoRead() uint8 {
	return 0xFF
}

// NoWrite is a convenience function to return a write function that
// does nothing. This is useful for hardware registers that are not
// writable.
func NoWrite(v uint8) {
	// do nothing
}
