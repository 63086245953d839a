package config

import (
	"os"

	"github.com/tauraamui/videowall/pkg/configdef"
	"github.com/tauraamui/videowall/pkg/log"
	"github.com/tauraamui/xerror"
)

func load() (configdef.Values, error) {
	var values configdef.Values

	configPath, err := resolveConfigPath()
	if err != nil {
		return configdef.Values{}, err
	}

	log.Info("Resolved config file location: %s", configPath)
	file, err := readConfigFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return configdef.Values{}, xerror.Errorf("%w: %s", configdef.ErrConfigNotFound, configPath)
		}
		return configdef.Values{}, err
	}

	if err := unmarshal(file, &values); err != nil {
		return configdef.Values{}, err
	}

	loadDefaultWallSettings(values.Walls)

	if err = values.RunValidate(); err != nil {
		return configdef.Values{}, err
	}

	return values, nil
}

func loadDefaultWallSettings(walls []configdef.Wall) {
	for i := range walls {
		wall := &walls[i]
		if wall.Port == 0 {
			wall.Port = defaultSettings[PORT].(int)
		}
		if len(wall.ScaleMode) == 0 {
			wall.ScaleMode = defaultSettings[SCALEMODE].(string)
		}
		if len(wall.Scaler) == 0 {
			wall.Scaler = defaultSettings[SCALER].(string)
		}
		if wall.FPS == 0 {
			wall.FPS = defaultSettings[FPS].(int)
		}
		if len(wall.Source.Kind) == 0 {
			wall.Source.Kind = defaultSettings[SOURCE].(string)
		}
		if len(wall.Source.Label) == 0 {
			wall.Source.Label = wall.Title
		}
	}
}
