package test

import (
	"errors"
	"testing"
)

// ExpectedFailure tests argument v for a failure condition suitable for its
// type:
//
//	bool -> bool == false
//	error -> error != nil
//
// If v is nil the test fails.
func ExpectedFailure(t *testing.T, v interface{}) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		if v {
			t.Errorf("expected failure (bool)")
			return false
		}

	case error:
		if v == nil {
			t.Errorf("expected failure (error)")
			return false
		}

	case nil:
		t.Errorf("expected failure (nil)")
		return false

	default:
		t.Fatalf("unsupported type (%T) for expectation testing", v)
		return false
	}

	return true
}

// ExpectedSuccess tests argument v for a success condition suitable for its
// type:
//
//	bool -> bool == true
//	error -> error == nil
//
// If v is nil the test succeeds.
func ExpectedSuccess(t *testing.T, v interface{}) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		if !v {
			t.Errorf("expected success (bool)")
			return false
		}

	case error:
		if v != nil {
			t.Errorf("expected success (error: %v)", v)
			return false
		}

	case nil:
		return true

	default:
		t.Fatalf("unsupported type (%T) for expectation testing", v)
		return false
	}

	return true
}

// ExpectedError checks that err matches target according to errors.Is.
func ExpectedError(t *testing.T, err error, target error) bool {
	t.Helper()

	if !errors.Is(err, target) {
		t.Errorf("expected error %q, got %v", target, err)
		return false
	}
	return true
}
