package process

import (
	"time"

	"github.com/tauraamui/videowall/pkg/sketch"
)

func StreamFrame(title string, src sketch.Source, wall Transmitter) bool {
	return streamFrame(title, src, wall)
}

func OverloadNow(overload func() time.Time) func() {
	nowRef := now
	now = overload
	return func() { now = nowRef }
}
