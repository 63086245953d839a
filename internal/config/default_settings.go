package config

import "github.com/tauraamui/videowall/pkg/configdef"

type defaultSettingKey uint

const (
	WALLS     defaultSettingKey = 0x0
	PORT      defaultSettingKey = 0x1
	SCALEMODE defaultSettingKey = 0x2
	SCALER    defaultSettingKey = 0x3
	FPS       defaultSettingKey = 0x4
	SOURCE    defaultSettingKey = 0x5
)

var defaultSettings = map[defaultSettingKey]interface{}{
	WALLS: []configdef.Wall{
		{
			Title:     "sensorlab",
			Host:      "127.0.0.1",
			Port:      9999,
			ScaleMode: "stretch",
			Scaler:    "nearest",
			FPS:       30,
			Source:    configdef.Source{Kind: "testpattern", Label: "sensorlab"},
		},
	},
	PORT:      9999,
	SCALEMODE: "stretch",
	SCALER:    "nearest",
	FPS:       30,
	SOURCE:    "testpattern",
}
