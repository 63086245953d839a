package process

import (
	"context"
	"time"

	"github.com/tauraamui/videowall/pkg/config/schedule"
	"github.com/tauraamui/videowall/pkg/log"
	"github.com/tauraamui/videowall/pkg/raster"
	"github.com/tauraamui/videowall/pkg/sketch"
)

// Transmitter is the part of wall.Transmitter the render loop drives.
type Transmitter interface {
	StreamImage(*raster.Raster) error
	IsOpen() bool
}

type StreamSettings struct {
	Title    string
	Source   sketch.Source
	Wall     Transmitter
	FPS      int
	Schedule schedule.Schedule
}

var now = time.Now

// StreamProcess returns the render loop for one wall: once per frame
// interval it pulls the current frame from the source and streams it,
// unless the schedule has the wall switched off.
func StreamProcess(settings StreamSettings) func(context.Context) []chan interface{} {
	return func(ctx context.Context) []chan interface{} {
		stopped := make(chan interface{})
		go runStream(ctx, stopped, settings)
		return []chan interface{}{stopped}
	}
}

func runStream(ctx context.Context, stopped chan interface{}, settings StreamSettings) {
	defer close(stopped)

	fps := settings.FPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	wasOff := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if settings.Schedule != nil && !settings.Schedule.IsOn(now()) {
				if !wasOff {
					wasOff = true
					log.Info("Wall [%s] switched off by schedule", settings.Title)
				}
				continue
			}
			if wasOff {
				wasOff = false
				log.Info("Wall [%s] switched on by schedule", settings.Title)
			}
			streamFrame(settings.Title, settings.Source, settings.Wall)
		}
	}
}

func streamFrame(title string, src sketch.Source, wall Transmitter) bool {
	if !wall.IsOpen() {
		log.Debug("Wall [%s] is not open, skipping frame", title)
		return false
	}

	frame, err := src.CurrentFrame()
	if err != nil {
		log.Error("Unable to render frame for wall [%s]: %v", title, err)
		return false
	}

	log.Debug("Streaming %dx%d frame to wall [%s]", frame.W, frame.H, title)
	return wall.StreamImage(frame) == nil
}
