package memory

import "encoding/binary"

// Accessor is anything that moves bytes to and from the memory map.
type Accessor interface {
	Read(addr uint32, buf []byte) error
	Write(addr uint32, data []byte) error
}

// Read8 reads a byte.
func Read8(a Accessor, addr uint32) (uint8, error) {
	var buf [1]byte
	err := a.Read(addr, buf[:])
	return buf[0], err
}

// Read32 reads a little-endian word.
func Read32(a Accessor, addr uint32) (uint32, error) {
	var buf [4]byte
	err := a.Read(addr, buf[:])
	return binary.LittleEndian.Uint32(buf[:]), err
}

func Write8(a Accessor, addr uint32, value uint8) error {
	return a.Write(addr, []byte{value})
}

// Write32 writes a little-endian word.
func Write32(a Accessor, addr uint32, value uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], value)
	return a.Write(addr, buf[:])
}
