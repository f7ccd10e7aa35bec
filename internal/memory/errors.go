package memory

import (
	"errors"
	"fmt"
)

var (
	ErrNoMatchingRegion  = errors.New("no region contains the address")
	ErrCrossRegionAccess = errors.New("access spans more than one region")
	ErrReadDenied        = errors.New("read not permitted")
	ErrWriteDenied       = errors.New("write not permitted")
)

// AccessError describes a failed bus transaction.
type AccessError struct {
	Op      string // "read" or "write"
	Addr    uint32
	Len     int
	Region  string // empty when no region matched
	Context AccessContext
	Err     error
}

func (e *AccessError) Error() string {
	if e.Region == "" {
		return fmt.Sprintf("%s of %d bytes at 0x%08X: %v", e.Op, e.Len, e.Addr, e.Err)
	}
	return fmt.Sprintf("%s of %d bytes at 0x%08X (%s, %s context): %v", e.Op, e.Len, e.Addr, e.Region, e.Context, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}
