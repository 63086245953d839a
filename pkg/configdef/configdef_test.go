package configdef_test

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/videowall/pkg/configdef"
)

const validWall = `{
	"title": "lab",
	"host": "10.0.0.20",
	"port": 9999,
	"scale_mode": "stretch",
	"scaler": "nearest",
	"fps": 30,
	"source": {"kind": "testpattern", "label": "lab"}
}`

func TestValidateEmptyConfigPasses(t *testing.T) {
	is := is.New(t)
	body := `{}`
	config := configdef.Values{}
	is.NoErr(json.Unmarshal([]byte(body), &config))
	is.NoErr(config.RunValidate())
}

func TestValidatePopulatedConfigPassesValidation(t *testing.T) {
	is := is.New(t)
	body := `{"debug": true, "walls": [` + validWall + `]}`
	config := configdef.Values{}
	is.NoErr(json.Unmarshal([]byte(body), &config))
	is.NoErr(config.RunValidate())
	is.Equal(config.Walls[0].Port, 9999)
	is.Equal(config.Walls[0].Source.Kind, "testpattern")
}

func TestValidatePopulatedConfigFailsValidationForMissingHost(t *testing.T) {
	is := is.New(t)
	body := `{
			"walls": [
				{
					"title": "lab",
					"port": 9999,
					"scale_mode": "crop",
					"scaler": "nearest",
					"fps": 30,
					"source": {"kind": "testpattern"}
				}
			]
		}`
	config := configdef.Values{}
	is.NoErr(json.Unmarshal([]byte(body), &config))
	is.Equal(config.RunValidate().Error(), `Validation error in field "Host" of type "string" using validator "empty=false"`)
}

func TestValidatePopulatedConfigFailsValidationForPortOutOfRange(t *testing.T) {
	is := is.New(t)
	body := `{
			"walls": [
				{
					"title": "lab",
					"host": "10.0.0.20",
					"port": 70000,
					"scale_mode": "crop",
					"scaler": "nearest",
					"fps": 30,
					"source": {"kind": "testpattern"}
				}
			]
		}`
	config := configdef.Values{}
	is.NoErr(json.Unmarshal([]byte(body), &config))
	is.Equal(config.RunValidate().Error(), `Validation error in field "Port" of type "int" using validator "lte=65535"`)
}

func TestValidatePopulatedConfigFailsValidationForFPSLessThan1(t *testing.T) {
	is := is.New(t)
	body := `{
			"walls": [
				{
					"title": "lab",
					"host": "10.0.0.20",
					"port": 9999,
					"scale_mode": "crop",
					"scaler": "nearest",
					"fps": -4,
					"source": {"kind": "testpattern"}
				}
			]
		}`
	config := configdef.Values{}
	is.NoErr(json.Unmarshal([]byte(body), &config))
	is.Equal(config.RunValidate().Error(), `Validation error in field "FPS" of type "int" using validator "gte=1"`)
}

func TestValidatePopulatedConfigFailsValidationForUnknownScaleMode(t *testing.T) {
	is := is.New(t)
	body := `{
			"walls": [
				{
					"title": "lab",
					"host": "10.0.0.20",
					"port": 9999,
					"scale_mode": "fill",
					"scaler": "nearest",
					"fps": 30,
					"source": {"kind": "testpattern"}
				}
			]
		}`
	config := configdef.Values{}
	is.NoErr(json.Unmarshal([]byte(body), &config))
	is.True(config.RunValidate() != nil)
}

func TestValidatePopulatedConfigFailsValidationForNonUniqueWallTitles(t *testing.T) {
	is := is.New(t)
	body := `{"walls": [` + validWall + `,` + validWall + `]}`
	config := configdef.Values{}
	is.NoErr(json.Unmarshal([]byte(body), &config))
	is.Equal(config.RunValidate().Error(), "validation failed: wall titles must be unique")
}

func TestValidateImageSourceNeedsPath(t *testing.T) {
	is := is.New(t)
	config := configdef.Values{Walls: []configdef.Wall{
		{
			Title: "lab", Host: "10.0.0.20", Port: 9999,
			ScaleMode: "crop", Scaler: "nearest", FPS: 30,
			Source: configdef.Source{Kind: "image"},
		},
	}}
	is.Equal(config.RunValidate().Error(), "validation failed: wall [lab] image source needs a path")
}

func TestHasDupWallTitlesDoesNotFindDuplicates(t *testing.T) {
	is := is.New(t)
	walls := []configdef.Wall{}
	is.True(configdef.HasDupWallTitles(walls) == false)

	walls = []configdef.Wall{
		{Title: "Lobby"},
		{Title: "Lab"},
		{Title: "Atrium"},
	}

	is.True(configdef.HasDupWallTitles(walls) == false)
}

func TestHasDupWallTitlesDoesFindDuplicateWithLargeGap(t *testing.T) {
	is := is.New(t)
	walls := []configdef.Wall{
		{Title: "Wall1"},
		{Title: "Wall2"},
		{Title: "Wall3"},
		{Title: "Wall4"},
		{Title: "Wall5"},
		{Title: "Wall1"},
	}

	is.True(configdef.HasDupWallTitles(walls))
}
