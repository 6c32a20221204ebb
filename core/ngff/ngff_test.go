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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/histogram"
	"github.com/fmi-faim/hcs-core/core/wellplate"
)

func TestMakePlateAttrs(t *testing.T) {
	// Deliberately unsorted
	wells := []wellplate.Well{}
	for _, name := range []string{"F08", "D08", "E03"} {
		w, err := wellplate.ParseWellName(name, wellplate.Layout96)
		assert.NoError(t, err)
		wells = append(wells, w)
	}

	attrs, err := MakePlateAttrs("plate_name", "order_name", "barcode", wellplate.Layout96, wells)
	assert.NoError(t, err)

	assert.Equal(t, "plate_name", attrs.Plate.Name)
	assert.Equal(t, "order_name", attrs.OrderName)
	assert.Equal(t, "barcode", attrs.Barcode)
	assert.Equal(t, 1, attrs.Plate.FieldCount)
	assert.Equal(t, "0.4", attrs.Plate.Version)
	assert.Equal(t, 8, len(attrs.Plate.Rows))
	assert.Equal(t, 12, len(attrs.Plate.Columns))
	assert.Equal(t, NameEntry{Name: "A"}, attrs.Plate.Rows[0])
	assert.Equal(t, NameEntry{Name: "01"}, attrs.Plate.Columns[0])
	assert.Equal(t, []PlateWell{
		{ColumnIndex: 7, Path: "D/08", RowIndex: 3},
		{ColumnIndex: 2, Path: "E/03", RowIndex: 4},
		{ColumnIndex: 7, Path: "F/08", RowIndex: 5},
	}, attrs.Plate.Wells)

	_, err = MakePlateAttrs("p", "o", "b", wellplate.Layout(7), nil)
	assert.Error(t, err)
}

func TestAttrsRoundTrip(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	well, err := wellplate.ParseWellName("B07", wellplate.Layout96)
	assert.NoError(t, err)

	plateAttrs, err := MakePlateAttrs("exp42", "order-1", "BC-77", wellplate.Layout96, []wellplate.Well{well})
	assert.NoError(t, err)
	assert.NoError(t, WritePlateAttrs(fs, bucket, "exp42.zarr", plateAttrs))

	assert.NoError(t, WriteWellAttrs(fs, bucket, "exp42.zarr", well, MakeWellAttrs()))

	imageGroup := ImageGroupPath("exp42.zarr", well)
	assert.Equal(t, "exp42.zarr/B/07/0", imageGroup)

	hist, err := histogram.NewFromData(histogram.BitDepth16, []uint16{0, 0, 1, 1, 1, 2})
	assert.NoError(t, err)

	channels := []ChannelMetadata{
		{
			ChannelName:      "DAPI",
			DisplayColor:     "0034ff",
			Wavelength:       447,
			ExposureTime:     100,
			ExposureTimeUnit: "ms",
			Objective:        "20X Plan Apo Lambda",
		},
	}
	hists := []*histogram.UIntHistogram{hist}

	histNames, err := WriteChannelHistograms(fs, bucket, imageGroup, []string{"DAPI"}, hists)
	assert.NoError(t, err)
	assert.Equal(t, []string{"C00_DAPI_histogram.json"}, histNames)

	imgAttrs := ImageAttrs{
		Multiscales:         MakeMultiscales(1.3668, 1.3668),
		Omero:               Omero{Channels: BuildOmeroChannels(channels, histogram.BitDepth16, hists)},
		AcquisitionMetadata: AcquisitionMetadata{Channels: channels},
		Histograms:          histNames,
	}
	assert.NoError(t, WriteImageAttrs(fs, bucket, imageGroup, imgAttrs))

	// Everything reads back as written
	gotPlate, err := ReadPlateAttrs(fs, bucket, "exp42.zarr")
	assert.NoError(t, err)
	assert.Equal(t, plateAttrs, gotPlate)

	gotWell, err := ReadWellAttrs(fs, bucket, "exp42.zarr", well)
	assert.NoError(t, err)
	assert.Equal(t, MakeWellAttrs(), gotWell)

	gotImg, err := ReadImageAttrs(fs, bucket, imageGroup)
	assert.NoError(t, err)
	assert.Equal(t, imgAttrs, gotImg)

	gotHist, err := ReadChannelHistogram(fs, bucket, imageGroup, histNames[0])
	assert.NoError(t, err)
	assert.Equal(t, hist.Encode(), gotHist.Encode())

	za, err := MakeZArray(16, []int{2, 2000, 3000})
	assert.NoError(t, err)
	assert.NoError(t, WriteZArray(fs, bucket, imageGroup, za))

	gotZa, err := ReadZArray(fs, bucket, imageGroup)
	assert.NoError(t, err)
	assert.Equal(t, za, gotZa)

	// Group markers are in place so zarr readers recognise the hierarchy
	for _, group := range []string{"exp42.zarr", "exp42.zarr/B", "exp42.zarr/B/07", "exp42.zarr/B/07/0"} {
		exists, err := fs.ObjectExists(bucket, group+"/.zgroup")
		assert.NoError(t, err)
		assert.True(t, exists, group)
	}
}

func TestWriteChannelHistogramsMismatch(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	hist, err := histogram.NewEmpty(histogram.BitDepth8)
	assert.NoError(t, err)

	_, err = WriteChannelHistograms(fs, bucket, "exp42.zarr/B/07/0", []string{"DAPI", "FITC"}, []*histogram.UIntHistogram{hist})
	assert.EqualError(t, err, "2 channel names for 1 histograms")
}

func ExampleBuildOmeroChannels() {
	hist, _ := histogram.NewFromData(histogram.BitDepth8, []uint16{0, 0, 1, 1, 1, 2})
	flat, _ := histogram.NewFromData(histogram.BitDepth8, []uint16{7, 7, 7})

	channels := []ChannelMetadata{
		{ChannelName: "DAPI", DisplayColor: "0034ff"},
		{ChannelName: "FITC 488", DisplayColor: "73ff00"},
	}
	omero := BuildOmeroChannels(channels, histogram.BitDepth8, []*histogram.UIntHistogram{hist, flat})

	for _, ch := range omero {
		fmt.Printf("%v %v %v window %v-%v of %v-%v\n", ch.WavelengthID, ch.Label, ch.Color, ch.Window.Start, ch.Window.End, ch.Window.Min, ch.Window.Max)
	}

	// Output:
	// C01 DAPI 0034ff window 0-2 of 0-255
	// C02 FITC 488 73ff00 window 7-8 of 0-255
}

func ExampleMakeZArray() {
	za, err := MakeZArray(16, []int{2, 2000, 3000})
	fmt.Printf("%v|%v|%v|%v\n", err, za.Dtype, za.Shape, za.Chunks)

	za, err = MakeZArray(8, []int{1, 256, 256})
	fmt.Printf("%v|%v|%v|%v\n", err, za.Dtype, za.Shape, za.Chunks)

	_, err = MakeZArray(12, []int{1, 256, 256})
	fmt.Printf("%v\n", err)

	// Output:
	// <nil>|<u2|[2 2000 3000]|[1 2000 2048]
	// <nil>||u1|[1 256 256]|[1 256 256]
	// unsupported bit depth: 12
}

func ExampleHistogramFileName() {
	fmt.Println(HistogramFileName(0, "DAPI"))
	fmt.Println(HistogramFileName(1, "FITC 488"))

	// Output:
	// C00_DAPI_histogram.json
	// C01_FITC_488_histogram.json
}
