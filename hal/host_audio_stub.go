//go:build !cgo

package hal

import "errors"

// hostAudio is a stub when cgo audio backends are unavailable.
type hostAudio struct{}

func newHostAudio() Audio { return hostAudio{} }

func (hostAudio) Start(uint32) error         { return errors.New("audio requires cgo (build with CGO_ENABLED=1)") }
func (hostAudio) Stop() error                { return nil }
func (hostAudio) SetVolume(uint8)            {}
func (hostAudio) WriteSamples(s []int16) int { return 0 }
func (hostAudio) PendingSamples() int        { return 0 }
