package configdef

import (
	"errors"
	"fmt"

	"github.com/tauraamui/videowall/pkg/config/schedule"
	"gopkg.in/dealancer/validate.v2"
)

type Source struct {
	Kind  string `json:"kind" validate:"one_of=testpattern,image"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type Wall struct {
	Title     string        `json:"title" validate:"empty=false"`
	Host      string        `json:"host" validate:"empty=false"`
	Port      int           `json:"port" validate:"gte=1 & lte=65535"`
	ScaleMode string        `json:"scale_mode" validate:"one_of=crop,stretch"`
	Scaler    string        `json:"scaler" validate:"one_of=nearest,bilinear,opencv"`
	FPS       int           `json:"fps" validate:"gte=1 & lte=60"`
	Source    Source        `json:"source"`
	Disabled  bool          `json:"disabled"`
	Schedule  schedule.Week `json:"schedule"`
}

type Values struct {
	Debug bool   `json:"debug"`
	Walls []Wall `json:"walls"`
}

func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if hasDupWallTitles(v.Walls) {
		return fmt.Errorf(validationErrorHeader, errors.New("wall titles must be unique"))
	}
	for _, w := range v.Walls {
		if w.Source.Kind == "image" && len(w.Source.Path) == 0 {
			return fmt.Errorf(validationErrorHeader, fmt.Errorf("wall [%s] image source needs a path", w.Title))
		}
	}
	return nil
}

func hasDupWallTitles(walls []Wall) bool {
	seen := map[string]struct{}{}
	for _, w := range walls {
		if _, ok := seen[w.Title]; ok {
			return true
		}
		seen[w.Title] = struct{}{}
	}
	return false
}
