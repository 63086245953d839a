package config

import (
	"github.com/tauraamui/videowall/internal/config"
	"github.com/tauraamui/videowall/pkg/configdef"
)

type Destroyer interface {
	configdef.Destroyer
}

func DefaultDestroyer() Destroyer {
	return config.DefaultDestroyer()
}
