//go:build statsview

package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/golang/glog"
)

const Address = "localhost:12600"
const url = "/debug/statsview"

// Launch starts the stats server on its own goroutine.
func Launch() {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()
	glog.Infof("statsview: available at http://%s%s", Address, url)
}

func Available() bool {
	return true
}
