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

	"github.com/fmi-faim/hcs-core/core/wellplate"
)

// PlateImportParams - everything one plate conversion needs. CLI flags fill
// this in, so every field has to be expressible as a simple value
type PlateImportParams struct {
	SourcePath  string `json:"sourcepath"`  // Acquisition directory holding the exported TIFFs
	OutputPath  string `json:"outputpath"`  // Where the <PlateName>.zarr root is created
	PlateName   string `json:"platename"`   // Name of the plate, also names the zarr root
	OrderName   string `json:"ordername"`   // Order name recorded in the plate attrs
	Barcode     string `json:"barcode"`     // Plate barcode recorded in the plate attrs
	WellCount   int    `json:"wellcount"`   // Plate format: 18, 24, 96 or 384 wells
	BitDepth    int    `json:"bitdepth"`    // Pixel bit depth of the acquisition: 8 or 16
	WorkerCount int    `json:"workers"`     // How many wells to convert in parallel
}

// Validate - checks required values and applies defaults where we have them
func (p *PlateImportParams) Validate() error {
	if len(p.SourcePath) <= 0 {
		return fmt.Errorf("no source path specified")
	}
	if len(p.OutputPath) <= 0 {
		return fmt.Errorf("no output path specified")
	}
	if len(p.PlateName) <= 0 {
		return fmt.Errorf("no plate name specified")
	}

	if _, err := wellplate.MakeLayout(p.WellCount); err != nil {
		return err
	}

	if p.BitDepth != 8 && p.BitDepth != 16 {
		return fmt.Errorf("bit depth must be 8 or 16, got %v", p.BitDepth)
	}

	if p.WorkerCount <= 0 {
		p.WorkerCount = 4
	}

	return nil
}
