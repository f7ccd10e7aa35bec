package interfaces

// RegistersInterface is the read-only register view hosts display.
type RegistersInterface interface {
	GetReg(uint8) uint32
	GetCPSR() uint32
	IsThumb() bool
	String() string
}
