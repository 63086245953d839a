package config

import (
	"github.com/tauraamui/videowall/internal/config"
	"github.com/tauraamui/videowall/pkg/configdef"
)

type Creator interface {
	configdef.Creator
}

func DefaultCreator() Creator {
	return config.DefaultCreator()
}
