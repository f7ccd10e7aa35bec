//go:build !debug
// +build !debug

package dbg

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

type verboseLoggerImpl struct{}

func init() {
	debugLog = &verboseLoggerImpl{}
}

// Printf only logs when -v is at least TraceLevel.
func (n *verboseLoggerImpl) Printf(format string, a ...interface{}) {
	if glog.V(TraceLevel) {
		glog.InfoDepth(2, strings.TrimSuffix(fmt.Sprintf(format, a...), "\n"))
	}
}

func (n *verboseLoggerImpl) Enabled() bool {
	return bool(glog.V(TraceLevel))
}
