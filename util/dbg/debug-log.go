//go:build debug
// +build debug

package dbg

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

type debugLoggerImpl struct{}

func init() {
	debugLog = &debugLoggerImpl{}
}

// Printf logs unconditionally, attributed to the caller of dbg.Printf.
func (d *debugLoggerImpl) Printf(format string, a ...interface{}) {
	glog.InfoDepth(2, strings.TrimSuffix(fmt.Sprintf(format, a...), "\n"))
}

func (d *debugLoggerImpl) Enabled() bool {
	return true
}
