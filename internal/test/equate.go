package test

import "testing"

// Equate tests value against expectedValue. Both must be the same type, so
// untyped constants need a conversion at the call site:
//
//	test.Equate(t, cpu.Registers.GetPC(), uint32(16))
func Equate[T comparable](t *testing.T, value, expectedValue T) {
	t.Helper()

	if value != expectedValue {
		switch any(value).(type) {
		case uint8, uint16, uint32, uint64:
			t.Errorf("equation of type %T failed (%#x - wanted %#x)", value, any(value), any(expectedValue))
		default:
			t.Errorf("equation of type %T failed (%v - wanted %v)", value, value, expectedValue)
		}
	}
}
