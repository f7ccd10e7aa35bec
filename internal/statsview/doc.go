// Package statsview serves live runtime charts over HTTP. It is only
// built with the statsview build tag; other builds get a stub that
// reports it as unavailable.
//
// Once launched, charts are at
//
//	localhost:12600/debug/statsview
//
// and the standard pprof handlers under localhost:12600/debug/pprof/.
package statsview
