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

package mobie

import (
	"fmt"
	"path"
	"testing"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/histogram"
	"github.com/fmi-faim/hcs-core/core/logger"
	"github.com/fmi-faim/hcs-core/core/ngff"
	"github.com/fmi-faim/hcs-core/core/wellplate"
	"github.com/stretchr/testify/assert"
)

func ExampleHexToRGBA() {
	fmt.Println(HexToRGBA("0034ff"))
	fmt.Println(HexToRGBA("73ff00"))
	fmt.Println(HexToRGBA("ffffff"))
	fmt.Println(HexToRGBA(""))
	fmt.Println(HexToRGBA("zzzzzz"))

	// Output:
	// r=0,g=52,b=255,a=255
	// r=115,g=255,b=0,a=255
	// r=255,g=255,b=255,a=255
	// r=255,g=255,b=255,a=255
	// r=255,g=255,b=255,a=255
}

func TestProjectRoundTrip(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	proj := Project{Description: "HCS conversions", SpecVersion: SpecVersion}
	proj.EnsureDataset("hcs")
	proj.EnsureDataset("hcs")
	proj.EnsureDataset("screens")

	assert.Equal(t, []string{"hcs", "screens"}, proj.Datasets)
	assert.Equal(t, "hcs", proj.DefaultDataset)

	assert.NoError(t, WriteProject(fs, bucket, "project", proj))

	got, err := ReadProject(fs, bucket, "project")
	assert.NoError(t, err)
	assert.Equal(t, proj, got)
}

// Writes a well the way the importer does, with hand-picked intensity data
// so contrast limits are easy to spot in the assertions
func writeTestWell(t *testing.T, fs fileaccess.FileAccess, bucket string, plateRoot string, well wellplate.Well, shape []int, dapi []uint16, fitc []uint16) {
	imageGroup := ngff.ImageGroupPath(plateRoot, well)

	err := ngff.WriteWellAttrs(fs, bucket, plateRoot, well, ngff.MakeWellAttrs())
	assert.NoError(t, err)

	dapiHist, err := histogram.NewFromData(histogram.BitDepth8, dapi)
	assert.NoError(t, err)
	fitcHist, err := histogram.NewFromData(histogram.BitDepth8, fitc)
	assert.NoError(t, err)

	histFiles, err := ngff.WriteChannelHistograms(fs, bucket, imageGroup,
		[]string{"DAPI", "FITC 488"}, []*histogram.UIntHistogram{dapiHist, fitcHist})
	assert.NoError(t, err)

	za, err := ngff.MakeZArray(8, shape)
	assert.NoError(t, err)
	assert.NoError(t, ngff.WriteZArray(fs, bucket, imageGroup, za))

	attrs := ngff.ImageAttrs{
		Multiscales: ngff.MakeMultiscales(1.25, 1.25),
		Omero: ngff.Omero{
			Channels: []ngff.OmeroChannel{
				{Color: "0034ff", Label: "DAPI", WavelengthID: "C01"},
				{Color: "73ff00", Label: "FITC 488", WavelengthID: "C02"},
			},
		},
		Histograms: histFiles,
	}
	assert.NoError(t, ngff.WriteImageAttrs(fs, bucket, imageGroup, attrs))
}

func TestAddPlateToDataset(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	datasetFolder := "project/hcs"
	plateRoot := "project/hcs/exp42.zarr"

	layout, err := wellplate.MakeLayout(96)
	assert.NoError(t, err)

	b07, err := wellplate.ParseWellName("B07", layout)
	assert.NoError(t, err)
	c03, err := wellplate.ParseWellName("C03", layout)
	assert.NoError(t, err)

	plateAttrs, err := ngff.MakePlateAttrs("exp42", "order-1", "bc-1", layout, []wellplate.Well{b07, c03})
	assert.NoError(t, err)
	assert.NoError(t, ngff.WritePlateAttrs(fs, bucket, plateRoot, plateAttrs))

	writeTestWell(t, fs, bucket, plateRoot, b07, []int{2, 2000, 3000},
		[]uint16{0, 0, 1, 1, 1, 2}, []uint16{10, 20})
	writeTestWell(t, fs, bucket, plateRoot, c03, []int{2, 1000, 1000},
		[]uint16{4, 4, 4, 4}, []uint16{30})

	params := LinkParams{
		DatasetFolder: datasetFolder,
		PlatePath:     plateRoot,
		Gap:           50,
	}
	assert.NoError(t, AddPlateToDataset(fs, bucket, params, &logger.NullLogger{}))

	ds, err := ReadDataset(fs, bucket, datasetFolder)
	assert.NoError(t, err)
	assert.True(t, ds.Is2D)

	// 2 wells x 2 channels, plus the well region table
	assert.Len(t, ds.Sources, 5)

	src := ds.Sources["B07_C01_DAPI"]
	assert.NotNil(t, src.Image)
	assert.Equal(t, ImageDataLocation{RelativePath: "exp42.zarr/B/07/0", Channel: 0}, src.Image.ImageData["ome.zarr"])

	src = ds.Sources["C03_C02_FITC_488"]
	assert.NotNil(t, src.Image)
	assert.Equal(t, ImageDataLocation{RelativePath: "exp42.zarr/C/03/0", Channel: 1}, src.Image.ImageData["ome.zarr"])

	assert.NotNil(t, ds.Sources["wells"].Regions)
	assert.Equal(t, "tables/wells", ds.Sources["wells"].Regions.TableData.TSV.RelativePath)

	// 4 per-source views, 2 channel views, 1 overview
	assert.Len(t, ds.Views, 7)

	// Per-source view: its own contrast limits, placed at column 6, row 1 of
	// the grid. Cell size is the largest field (3000x2000) plus the gap,
	// scaled by the 1.25um pixel spacing
	v := ds.Views["B07_C01_DAPI"]
	assert.Equal(t, "Wells", v.UISelectionGroup)
	assert.False(t, v.IsExclusive)
	assert.Len(t, v.SourceDisplays, 1)
	assert.Equal(t, "r=0,g=52,b=255,a=255", v.SourceDisplays[0].ImageDisplay.Color)
	assert.Equal(t, []int{0, 2}, v.SourceDisplays[0].ImageDisplay.ContrastLimits)
	assert.Len(t, v.SourceTransforms, 1)
	assert.Equal(t, []float64{
		1, 0, 0, 22875,
		0, 1, 0, 2562.5,
		0, 0, 1, 0,
	}, v.SourceTransforms[0].Affine.Parameters)
	assert.Equal(t, []string{"B07_C01_DAPI"}, v.SourceTransforms[0].Affine.Sources)

	// Channel views use the folded plate histograms
	cv := ds.Views["C01_DAPI"]
	assert.Equal(t, "Channels", cv.UISelectionGroup)
	assert.False(t, cv.IsExclusive)
	assert.Equal(t, []int{0, 4}, cv.SourceDisplays[0].ImageDisplay.ContrastLimits)
	assert.Equal(t, []string{"B07_C01_DAPI", "C03_C01_DAPI"}, cv.SourceDisplays[0].ImageDisplay.Sources)
	assert.Len(t, cv.SourceTransforms, 2)

	fv := ds.Views["C02_FITC_488"]
	assert.Equal(t, []int{10, 30}, fv.SourceDisplays[0].ImageDisplay.ContrastLimits)
	assert.Equal(t, "r=115,g=255,b=0,a=255", fv.SourceDisplays[0].ImageDisplay.Color)

	// The overview combines both channel displays with the well regions, and
	// each well's transform carries all of that well's channel sources
	dv := ds.Views["default"]
	assert.Equal(t, "Overview", dv.UISelectionGroup)
	assert.True(t, dv.IsExclusive)
	assert.Len(t, dv.SourceDisplays, 3)
	assert.Equal(t, "C01_DAPI", dv.SourceDisplays[0].ImageDisplay.Name)
	assert.Equal(t, "C02_FITC_488", dv.SourceDisplays[1].ImageDisplay.Name)

	region := dv.SourceDisplays[2].RegionDisplay
	assert.NotNil(t, region)
	assert.Equal(t, "Wells", region.Name)
	assert.Equal(t, 0.5, region.Opacity)
	assert.Equal(t, "glasbey", region.Lut)
	assert.Equal(t, "wells", region.TableSource)
	assert.True(t, region.Visible)
	assert.True(t, region.ShowAsBoundaries)
	assert.Equal(t, map[string][]string{
		"B07": {"B07_C01_DAPI", "B07_C02_FITC_488"},
		"C03": {"C03_C01_DAPI", "C03_C02_FITC_488"},
	}, region.Sources)

	assert.Len(t, dv.SourceTransforms, 2)
	assert.Equal(t, []string{"B07_C01_DAPI", "B07_C02_FITC_488"}, dv.SourceTransforms[0].Affine.Sources)
	assert.Equal(t, []string{"C03_C01_DAPI", "C03_C02_FITC_488"}, dv.SourceTransforms[1].Affine.Sources)

	tsv, err := fs.ReadObject(bucket, path.Join(datasetFolder, "tables", "wells", "default.tsv"))
	assert.NoError(t, err)
	assert.Equal(t, "region_id\ttreatment\nB07\tUnknown\nC03\tUnknown\n", string(tsv))
}

func TestAddPlateToDatasetEmpty(t *testing.T) {
	fs := &fileaccess.FSAccess{}
	bucket := t.TempDir()

	layout, err := wellplate.MakeLayout(96)
	assert.NoError(t, err)

	plateAttrs, err := ngff.MakePlateAttrs("empty", "", "", layout, []wellplate.Well{})
	assert.NoError(t, err)
	assert.NoError(t, ngff.WritePlateAttrs(fs, bucket, "empty.zarr", plateAttrs))

	params := LinkParams{DatasetFolder: "ds", PlatePath: "empty.zarr"}
	err = AddPlateToDataset(fs, bucket, params, &logger.NullLogger{})
	assert.EqualError(t, err, "plate empty.zarr has no wells to link")
}
