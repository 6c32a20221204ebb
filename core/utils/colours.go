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

package utils

import (
	"fmt"
	"math"
)

// WavelengthToRGB - approximate display colour for an emission wavelength
// given in nanometers, 380nm through 750nm. Anything outside that range comes
// back black. Based on code by Dan Bruton,
// http://www.physics.sfasu.edu/astro/color/spectra.html
func WavelengthToRGB(wavelength float64) (int, int, int) {
	const gamma = 0.8

	r, g, b := 0.0, 0.0, 0.0
	if 380 <= wavelength && wavelength <= 440 {
		attenuation := 0.3 + 0.7*(wavelength-380)/(440-380)
		r = math.Pow((-(wavelength-440)/(440-380))*attenuation, gamma)
		g = 0
		b = math.Pow(1.0*attenuation, gamma)
	} else if 440 <= wavelength && wavelength <= 490 {
		r = 0
		g = math.Pow((wavelength-440)/(490-440), gamma)
		b = 1
	} else if 490 <= wavelength && wavelength <= 510 {
		r = 0
		g = 1
		b = math.Pow(-(wavelength-510)/(510-490), gamma)
	} else if 510 <= wavelength && wavelength <= 580 {
		r = math.Pow((wavelength-510)/(580-510), gamma)
		g = 1
		b = 0
	} else if 580 <= wavelength && wavelength <= 645 {
		r = 1
		g = math.Pow(-(wavelength-645)/(645-580), gamma)
		b = 0
	} else if 645 <= wavelength && wavelength <= 750 {
		attenuation := 0.3 + 0.7*(750-wavelength)/(750-645)
		r = math.Pow(1.0*attenuation, gamma)
		g = 0
		b = 0
	}

	return int(r * 255), int(g * 255), int(b * 255)
}

// RGBToHex - "rrggbb", lowercase, no # prefix
func RGBToHex(r int, g int, b int) string {
	return fmt.Sprintf("%02x%02x%02x", r, g, b)
}
