// Package memory models the regions that make up the GBA address space.
//
// Every region is a fixed-size byte buffer mapped at a base address, with a
// permission row per access context and a wait-state table per access width.
// The bus package owns the regions once they are built.
package memory

// GBA Memory Map Constants
const (
	BIOSAddrStart = 0x00000000
	BIOSAddrEnd   = 0x00003FFF
	BIOSSize      = BIOSAddrEnd - BIOSAddrStart + 1 // 16KB

	EWRAMAddrStart = 0x02000000
	EWRAMAddrEnd   = 0x0203FFFF
	EWRAMSize      = EWRAMAddrEnd - EWRAMAddrStart + 1 // 256KB

	IWRAMAddrStart = 0x03000000
	IWRAMAddrEnd   = 0x03007FFF
	IWRAMSize      = IWRAMAddrEnd - IWRAMAddrStart + 1 // 32KB

	IOAddrStart = 0x04000000
	IOAddrEnd   = 0x040003FF
	IOSize      = IOAddrEnd - IOAddrStart + 1 // 1KB

	PALRAMAddrStart = 0x05000000
	PALRAMAddrEnd   = 0x050003FF
	PALRAMSize      = PALRAMAddrEnd - PALRAMAddrStart + 1 // 1KB

	VRAMAddrStart = 0x06000000
	VRAMAddrEnd   = 0x06017FFF
	VRAMSize      = VRAMAddrEnd - VRAMAddrStart + 1 // 96KB

	OAMAddrStart = 0x07000000
	OAMAddrEnd   = 0x070003FF
	OAMSize      = OAMAddrEnd - OAMAddrStart + 1 // 1KB

	// Each wait-state window is sized for the largest cartridge image.
	GamePakAddrStartWS0 = 0x08000000
	GamePakAddrStartWS1 = 0x0A000000
	GamePakAddrStartWS2 = 0x0C000000
	GamePakWindowSize   = 0x02000000 // 32MB

	GamePakSRAMAddrStart = 0x0E000000
	GamePakSRAMAddrEnd   = 0x0E007FFF
	GamePakSRAMSize      = GamePakSRAMAddrEnd - GamePakSRAMAddrStart + 1 // 32KB
)

// ContextFor returns the access context code running at pc executes under.
// Only code fetched from the BIOS may read the BIOS.
func ContextFor(pc uint32) AccessContext {
	if pc <= BIOSAddrEnd {
		return ContextBIOS
	}
	return ContextGame
}
