// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package importparams

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/utils"
)

// ChannelConfig - display metadata for one acquisition channel, in w-index
// order. Key names follow the acquisition metadata convention
type ChannelConfig struct {
	ChannelName      string  `json:"channel-name"`
	DisplayColor     string  `json:"display-color"`
	Wavelength       int     `json:"wavelength"`
	ExposureTime     float64 `json:"exposure-time"`
	ExposureTimeUnit string  `json:"exposure-time-unit"`
}

// AcquisitionConfig - what the microscope setup doesn't put in file names:
// pixel calibration, objective and the channel display map
type AcquisitionConfig struct {
	SpatialCalibrationX float64         `json:"spatial-calibration-x"`
	SpatialCalibrationY float64         `json:"spatial-calibration-y"`
	Objective           string          `json:"objective"`
	Channels            []ChannelConfig `json:"channels"`
}

// LoadAcquisitionConfig - reads the acquisition config JSON, applies any
// HCS_CONFIG_* environment variable overrides, and fills in display colours
// from the channel wavelength where none is configured
func LoadAcquisitionConfig(fs fileaccess.FileAccess, bucket string, configPath string) (AcquisitionConfig, error) {
	cfg := AcquisitionConfig{}

	err := fs.ReadJSON(bucket, configPath, &cfg, false)
	if err != nil {
		return cfg, fmt.Errorf("failed to read acquisition config %v: %v", configPath, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.SpatialCalibrationX <= 0 || cfg.SpatialCalibrationY <= 0 {
		return cfg, fmt.Errorf("acquisition config %v needs positive spatial calibration, got x=%v y=%v", configPath, cfg.SpatialCalibrationX, cfg.SpatialCalibrationY)
	}
	if len(cfg.Channels) <= 0 {
		return cfg, fmt.Errorf("acquisition config %v declares no channels", configPath)
	}

	for i, ch := range cfg.Channels {
		if len(ch.ChannelName) <= 0 {
			return cfg, fmt.Errorf("acquisition config %v channel %v has no name", configPath, i+1)
		}
		if len(ch.DisplayColor) <= 0 {
			cfg.Channels[i].DisplayColor = utils.RGBToHex(utils.WavelengthToRGB(float64(ch.Wavelength)))
		}
	}

	return cfg, nil
}

// Override config with any values explicitly set in env vars (HCS_CONFIG_*)
func applyEnvOverrides(cfg *AcquisitionConfig) {
	reflection := reflect.ValueOf(cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)
		if val, present := os.LookupEnv(fmt.Sprintf("HCS_CONFIG_%s", fieldName)); present {
			switch field.Kind() {
			case reflect.String:
				field.SetString(val)
			case reflect.Float64:
				f, err := strconv.ParseFloat(val, 64)
				if err != nil {
					fmt.Printf("Could not cast value HCS_CONFIG_%s=%s to Float", fieldName, val)
					continue
				}
				field.SetFloat(f)
			case reflect.Int:
				n, err := strconv.Atoi(val)
				if err != nil {
					fmt.Printf("Could not cast value HCS_CONFIG_%s=%s to Int", fieldName, val)
					continue
				}
				field.SetInt(int64(n))
			}
		}
	}
}
