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
	"path"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/wellplate"
)

const (
	attrsFileName = ".zattrs"
	groupFileName = ".zgroup"
)

// WellGroupPath - storage path of a well group, eg "exp42.zarr/B/07"
func WellGroupPath(plateRoot string, well wellplate.Well) string {
	return path.Join(plateRoot, well.Path())
}

// ImageGroupPath - storage path of the image group within a well,
// eg "exp42.zarr/B/07/0"
func ImageGroupPath(plateRoot string, well wellplate.Well) string {
	return path.Join(plateRoot, well.Path(), "0")
}

// Every zarr group directory carries a marker file so readers recognise the
// hierarchy
func writeGroupMarker(fs fileaccess.FileAccess, bucket string, groupPath string) error {
	return fs.WriteJSON(bucket, path.Join(groupPath, groupFileName), ZGroup{ZarrFormat: 2})
}

func WritePlateAttrs(fs fileaccess.FileAccess, bucket string, plateRoot string, attrs PlateAttrs) error {
	err := writeGroupMarker(fs, bucket, plateRoot)
	if err != nil {
		return err
	}
	return fs.WriteJSON(bucket, path.Join(plateRoot, attrsFileName), attrs)
}

func ReadPlateAttrs(fs fileaccess.FileAccess, bucket string, plateRoot string) (PlateAttrs, error) {
	attrs := PlateAttrs{}
	err := fs.ReadJSON(bucket, path.Join(plateRoot, attrsFileName), &attrs, false)
	return attrs, err
}

func WriteWellAttrs(fs fileaccess.FileAccess, bucket string, plateRoot string, well wellplate.Well, attrs WellAttrs) error {
	// The row directory is a group too
	err := writeGroupMarker(fs, bucket, path.Join(plateRoot, well.RowName()))
	if err != nil {
		return err
	}

	wellGroup := WellGroupPath(plateRoot, well)
	err = writeGroupMarker(fs, bucket, wellGroup)
	if err != nil {
		return err
	}
	return fs.WriteJSON(bucket, path.Join(wellGroup, attrsFileName), attrs)
}

func ReadWellAttrs(fs fileaccess.FileAccess, bucket string, plateRoot string, well wellplate.Well) (WellAttrs, error) {
	attrs := WellAttrs{}
	err := fs.ReadJSON(bucket, path.Join(WellGroupPath(plateRoot, well), attrsFileName), &attrs, false)
	return attrs, err
}

func WriteImageAttrs(fs fileaccess.FileAccess, bucket string, imageGroup string, attrs ImageAttrs) error {
	err := writeGroupMarker(fs, bucket, imageGroup)
	if err != nil {
		return err
	}
	return fs.WriteJSON(bucket, path.Join(imageGroup, attrsFileName), attrs)
}

func ReadImageAttrs(fs fileaccess.FileAccess, bucket string, imageGroup string) (ImageAttrs, error) {
	attrs := ImageAttrs{}
	err := fs.ReadJSON(bucket, path.Join(imageGroup, attrsFileName), &attrs, false)
	return attrs, err
}
