package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte being shifted in and
	// out of the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. The SC
	// hardware register is used to control the serial port.
	//
	//  Bit 7: Transfer Start Flag (1=Transfer in progress, or requested)
	//  Bit 1: Clock Speed (CGB only, 1=Fast)
	//  Bit 0: Shift Clock (0=External Clock, 1=Internal Clock)
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. Internally
	// the divider is a 16-bit counter incremented every T-cycle,
	// of which only the upper 8 bits may be read. Writing any value
	// resets the whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. TIMA is
	// incremented on a falling edge of the divider bit selected by
	// TAC. When it overflows it is reloaded from TMA one M-cycle
	// later, and a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register.
	//
	//  Bit 2: Timer Enable
	//  Bit 1-0: Input Clock Select
	//    00: CPU Clock / 1024
	//    01: CPU Clock / 16
	//    10: CPU Clock / 64
	//    11: CPU Clock / 256
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	// NR10 is the first of the sound registers. The sound
	// registers and wave RAM (0xFF10 - 0xFF3F) are held as
	// plain storage for the audio collaborator.
	NR10 HardwareAddress = 0xFF10
	// NR52 is the sound on/off register.
	NR52 HardwareAddress = 0xFF26
	// WaveRAMEnd is the last address of wave pattern RAM.
	WaveRAMEnd HardwareAddress = 0xFF3F

	// LCDC is the address of the LCDC hardware register.
	//
	//  Bit 7: LCD Display Enable             (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
	//  Bit 5: Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
	//  Bit 4: Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 3: Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//  Bit 1-0: Mode Flag       (Mode 0-3)            (Read Only)
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY indicates the vertical line to which the present data
	// is transferred to the LCD Driver. It is read only.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY, setting the coincidence flag in
	// STAT (and optionally requesting a STAT interrupt) when equal.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the DMA hardware register. Writing to
	// it copies 0xA0 bytes from (value << 8) into OAM.
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B
	// KEY0 is the CGB compatibility register, only writable by
	// the boot ROM.
	KEY0 HardwareAddress = 0xFF4C
	// KEY1 is the CGB speed switch register.
	//
	//  Bit 7: Current Speed     (0=Normal, 1=Double) (Read Only)
	//  Bit 0: Prepare Speed Switch (0=No, 1=Prepare) (Read/Write)
	KEY1 HardwareAddress = 0xFF4D
	// VBK selects the VRAM bank mapped at 0x8000 - 0x9FFF (CGB only).
	VBK HardwareAddress = 0xFF4F
	// BDIS unmaps the boot ROM when written to.
	BDIS  HardwareAddress = 0xFF50
	HDMA1 HardwareAddress = 0xFF51
	HDMA2 HardwareAddress = 0xFF52
	HDMA3 HardwareAddress = 0xFF53
	HDMA4 HardwareAddress = 0xFF54
	// HDMA5 starts a VRAM DMA transfer, the lower 7 bits holding
	// the length of the transfer / 0x10 - 1.
	HDMA5 HardwareAddress = 0xFF55
	RP    HardwareAddress = 0xFF56
	BCPS  HardwareAddress = 0xFF68
	BCPD  HardwareAddress = 0xFF69
	OCPS  HardwareAddress = 0xFF6A
	OCPD  HardwareAddress = 0xFF6B
	OPRI  HardwareAddress = 0xFF6C
	// SVBK selects the WRAM bank mapped at 0xD000 - 0xDFFF (CGB
	// only). Selecting bank 0 selects bank 1.
	SVBK  HardwareAddress = 0xFF70
	PCM12 HardwareAddress = 0xFF76
	PCM34 HardwareAddress = 0xFF77
	// IE is the address of the IE hardware register. It uses the
	// same bit layout as IF, a set bit enabling the interrupt.
	IE HardwareAddress = 0xFFFF
)
