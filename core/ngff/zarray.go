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

package ngff

import (
	"fmt"
	"path"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
)

// Zarr chunks are at most this big per spatial dimension
const maxChunkSize = 2048

// ZArray - zarr v2 array metadata for the full-resolution level. The import
// records shape and dtype so readers can size every well before any pixel
// chunks are migrated: a chunk that isn't there reads as fill_value, which
// keeps the scaffold a legal zarr array
type ZArray struct {
	Chunks             []int       `json:"chunks"`
	Compressor         interface{} `json:"compressor"`
	Dtype              string      `json:"dtype"`
	FillValue          int         `json:"fill_value"`
	Filters            interface{} `json:"filters"`
	Order              string      `json:"order"`
	Shape              []int       `json:"shape"`
	DimensionSeparator string      `json:"dimension_separator"`
	ZarrFormat         int         `json:"zarr_format"`
}

// MakeZArray - array metadata for a cyx image of the given bit depth.
// Channels are chunked singly, spatial dimensions tile at maxChunkSize
func MakeZArray(bits int, shape []int) (ZArray, error) {
	dtype := ""
	switch bits {
	case 8:
		dtype = "|u1"
	case 16:
		dtype = "<u2"
	default:
		return ZArray{}, fmt.Errorf("unsupported bit depth: %v", bits)
	}

	if len(shape) < 2 {
		return ZArray{}, fmt.Errorf("array shape needs at least y and x, got %v dimensions", len(shape))
	}

	chunks := make([]int, len(shape))
	for i := range chunks {
		chunks[i] = 1
	}
	for _, i := range []int{len(shape) - 2, len(shape) - 1} {
		chunks[i] = shape[i]
		if chunks[i] > maxChunkSize {
			chunks[i] = maxChunkSize
		}
	}

	return ZArray{
		Chunks:             chunks,
		Compressor:         nil,
		Dtype:              dtype,
		FillValue:          0,
		Filters:            nil,
		Order:              "C",
		Shape:              append([]int{}, shape...),
		DimensionSeparator: "/",
		ZarrFormat:         2,
	}, nil
}

// WriteZArray - saves array metadata for the image group's level "0"
func WriteZArray(fs fileaccess.FileAccess, bucket string, imageGroup string, za ZArray) error {
	return fs.WriteJSON(bucket, path.Join(imageGroup, "0", ".zarray"), za)
}

// ReadZArray - loads the level "0" array metadata back, eg to learn well
// image shapes when laying plates out for viewing
func ReadZArray(fs fileaccess.FileAccess, bucket string, imageGroup string) (ZArray, error) {
	za := ZArray{}
	err := fs.ReadJSON(bucket, path.Join(imageGroup, "0", ".zarray"), &za, false)
	return za, err
}
