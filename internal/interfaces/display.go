package interfaces

import "image"

// RegisterSource is implemented by cores that expose their CPU registers.
type RegisterSource interface {
	Registers() RegistersInterface
}

// FrameSource is implemented by cores that can render a frame snapshot.
type FrameSource interface {
	Frame() *image.RGBA
}
