package config

import (
	"github.com/tauraamui/videowall/internal/config"
	"github.com/tauraamui/videowall/pkg/configdef"
)

type Resolver interface {
	configdef.Resolver
}

func DefaultResolver() Resolver {
	return config.DefaultResolver()
}
