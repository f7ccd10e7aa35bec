package convert

// Integer is any of the integer types register values are held in.
type Integer interface {
	~int | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// BoolToInt converts a boolean value to an integer of type T.
// It returns 0 for false and 1 for true.
func BoolToInt[T Integer](b bool) T {
	if b {
		return 1
	}
	return 0
}
