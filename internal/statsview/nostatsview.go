//go:build !statsview

package statsview

import "github.com/golang/glog"

func Launch() {
	glog.Warning("statsview: not available in this build, rebuild with -tags statsview")
}

func Available() bool {
	return false
}
