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
	"path/filepath"
	"strings"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/histogram"
	"github.com/fmi-faim/hcs-core/core/logger"
	"github.com/fmi-faim/hcs-core/core/ngff"
	"github.com/fmi-faim/hcs-core/core/wellplate"
	"github.com/pkg/errors"
)

// LinkParams - how to wire a converted plate into a MoBIE dataset
type LinkParams struct {
	// DatasetFolder is the dataset root holding dataset.json, bucket-relative
	DatasetFolder string

	// PlatePath is the root of the converted plate, bucket-relative
	PlatePath string

	// ViewName names the overview combining all channels, "" means "default"
	ViewName string

	// Gap is how many pixels to leave between wells in the viewer
	Gap int
}

// Per-channel state accumulated while walking wells
type channelAccum struct {
	color      string
	hist       *histogram.UIntHistogram
	sources    []string
	transforms []SourceTransform
}

// AddPlateToDataset - registers every well x channel of a converted plate as
// a source of the dataset, with views to browse them: one per source, one per
// channel laying the plate out as a grid, and one overview combining all
// channels with the well region table. Contrast limits come from the stored
// channel histograms, plate wide ones by folding the well histograms
// together. The dataset is created if it doesn't exist yet
func AddPlateToDataset(fs fileaccess.FileAccess, bucket string, params LinkParams, jobLog logger.ILogger) error {
	viewName := params.ViewName
	if viewName == "" {
		viewName = "default"
	}

	plateAttrs, err := ngff.ReadPlateAttrs(fs, bucket, params.PlatePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read plate attrs from %v", params.PlatePath)
	}

	if len(plateAttrs.Plate.Wells) == 0 {
		return fmt.Errorf("plate %v has no wells to link", params.PlatePath)
	}

	plateRel, err := filepath.Rel(params.DatasetFolder, params.PlatePath)
	if err != nil {
		return errors.Wrapf(err, "failed to locate plate %v relative to dataset %v", params.PlatePath, params.DatasetFolder)
	}
	plateRel = filepath.ToSlash(plateRel)

	yMax, xMax, err := largestFieldShape(fs, bucket, params.PlatePath, plateAttrs)
	if err != nil {
		return err
	}

	dataset, err := ReadDataset(fs, bucket, params.DatasetFolder)
	if err != nil {
		if !fs.IsNotFoundError(err) {
			return errors.Wrapf(err, "failed to read dataset at %v", params.DatasetFolder)
		}
		jobLog.Infof("Creating new dataset at %v", params.DatasetFolder)
		dataset = NewDataset()
	}

	chOrder := []string{}
	accums := map[string]*channelAccum{}
	wellNames := []string{}
	wellsPerChannel := map[string][]string{}

	for _, w := range plateAttrs.Plate.Wells {
		well := wellplate.Well{Row: w.RowIndex, Column: w.ColumnIndex}
		imageGroup := ngff.ImageGroupPath(params.PlatePath, well)

		attrs, err := ngff.ReadImageAttrs(fs, bucket, imageGroup)
		if err != nil {
			return errors.Wrapf(err, "failed to read image attrs for well %v", well.Name())
		}

		hists := []*histogram.UIntHistogram{}
		for _, histFile := range attrs.Histograms {
			hist, err := ngff.ReadChannelHistogram(fs, bucket, imageGroup, histFile)
			if err != nil {
				return errors.Wrapf(err, "failed to read histogram %v for well %v", histFile, well.Name())
			}
			hists = append(hists, hist)
		}

		if len(hists) != len(attrs.Omero.Channels) {
			return fmt.Errorf("well %v has %v histograms for %v channels", well.Name(), len(hists), len(attrs.Omero.Channels))
		}

		ySpacing, xSpacing, err := imageScale(attrs)
		if err != nil {
			return errors.Wrapf(err, "well %v", well.Name())
		}

		wellNames = append(wellNames, well.Name())

		for k, ch := range attrs.Omero.Channels {
			key := strings.ReplaceAll(fmt.Sprintf("%v_%v", ch.WavelengthID, ch.Label), " ", "_")
			name := fmt.Sprintf("%v_%v", well.Name(), key)

			transform := SourceTransform{
				Affine: &AffineTransform{
					Parameters: []float64{
						1, 0, 0, float64(xMax+params.Gap) * xSpacing * float64(well.Column),
						0, 1, 0, float64(yMax+params.Gap) * ySpacing * float64(well.Row),
						0, 0, 1, 0,
					},
					Sources: []string{name},
				},
			}

			start, end, err := contrastLimits(hists[k])
			if err != nil {
				return errors.Wrapf(err, "failed to compute contrast limits for %v", name)
			}

			colour := HexToRGBA(ch.Color)

			dataset.Sources[name] = Source{
				Image: &ImageSource{
					ImageData: map[string]ImageDataLocation{
						"ome.zarr": {
							RelativePath: path.Join(plateRel, w.Path, "0"),
							Channel:      k,
						},
					},
				},
			}

			dataset.Views[name] = View{
				UISelectionGroup: "Wells",
				IsExclusive:      false,
				SourceDisplays: []SourceDisplay{
					{
						ImageDisplay: &ImageDisplay{
							Name:           name,
							Color:          colour,
							ContrastLimits: []int{start, end},
							Opacity:        1,
							Sources:        []string{name},
						},
					},
				},
				SourceTransforms: []SourceTransform{transform},
			}

			acc, exists := accums[key]
			if !exists {
				plateHist, err := histogram.NewEmpty(hists[k].BitDepth())
				if err != nil {
					return errors.Wrapf(err, "failed to start plate histogram for %v", key)
				}
				acc = &channelAccum{color: colour, hist: plateHist}
				accums[key] = acc
				chOrder = append(chOrder, key)
			}
			if err = acc.hist.Combine(hists[k]); err != nil {
				return errors.Wrapf(err, "failed to accumulate plate histogram for %v", key)
			}
			acc.sources = append(acc.sources, name)
			acc.transforms = append(acc.transforms, transform)
			wellsPerChannel[well.Name()] = append(wellsPerChannel[well.Name()], name)
		}
	}

	if len(chOrder) == 0 {
		return fmt.Errorf("plate %v has no channels to link", params.PlatePath)
	}

	err = writeWellRegionTable(fs, bucket, params.DatasetFolder, wellNames)
	if err != nil {
		return err
	}

	dataset.Sources["wells"] = Source{
		Regions: &RegionsSource{
			TableData: TableData{TSV: TableLocation{RelativePath: "tables/wells"}},
		},
	}

	channelDisplays := []SourceDisplay{}
	for _, key := range chOrder {
		acc := accums[key]
		start, end, err := contrastLimits(acc.hist)
		if err != nil {
			return errors.Wrapf(err, "failed to compute plate contrast limits for %v", key)
		}

		display := SourceDisplay{
			ImageDisplay: &ImageDisplay{
				Name:           key,
				Color:          acc.color,
				ContrastLimits: []int{start, end},
				Opacity:        1,
				Sources:        acc.sources,
			},
		}
		channelDisplays = append(channelDisplays, display)

		dataset.Views[key] = View{
			UISelectionGroup: "Channels",
			IsExclusive:      false,
			SourceDisplays:   []SourceDisplay{display},
			SourceTransforms: acc.transforms,
		}
	}

	regionDisplay := SourceDisplay{
		RegionDisplay: &RegionDisplay{
			Name:             "Wells",
			Opacity:          0.5,
			Lut:              "glasbey",
			Sources:          wellsPerChannel,
			TableSource:      "wells",
			Visible:          true,
			ShowAsBoundaries: true,
		},
	}

	dataset.Views[viewName] = View{
		UISelectionGroup: "Overview",
		IsExclusive:      true,
		SourceDisplays:   append(channelDisplays, regionDisplay),
		SourceTransforms: mergeWellTransforms(chOrder, accums),
	}

	err = WriteDataset(fs, bucket, params.DatasetFolder, dataset)
	if err != nil {
		return errors.Wrapf(err, "failed to write dataset at %v", params.DatasetFolder)
	}

	jobLog.Infof("Linked %v wells (%v channels) from %v into %v", len(wellNames), len(chOrder), params.PlatePath, params.DatasetFolder)
	return nil
}

// Scans level 0 array metadata of every well to find the yx extent of the
// largest field, which sets the grid cell size
func largestFieldShape(fs fileaccess.FileAccess, bucket string, platePath string, plateAttrs ngff.PlateAttrs) (int, int, error) {
	yMax, xMax := 0, 0
	for _, w := range plateAttrs.Plate.Wells {
		well := wellplate.Well{Row: w.RowIndex, Column: w.ColumnIndex}
		za, err := ngff.ReadZArray(fs, bucket, ngff.ImageGroupPath(platePath, well))
		if err != nil {
			return 0, 0, errors.Wrapf(err, "failed to read array metadata for well %v", well.Name())
		}
		if len(za.Shape) < 2 {
			return 0, 0, fmt.Errorf("well %v array has no yx shape: %v", well.Name(), za.Shape)
		}
		if y := za.Shape[len(za.Shape)-2]; y > yMax {
			yMax = y
		}
		if x := za.Shape[len(za.Shape)-1]; x > xMax {
			xMax = x
		}
	}
	return yMax, xMax, nil
}

func imageScale(attrs ngff.ImageAttrs) (float64, float64, error) {
	if len(attrs.Multiscales) < 1 || len(attrs.Multiscales[0].Datasets) < 1 || len(attrs.Multiscales[0].Datasets[0].CoordinateTransformations) < 1 {
		return 0, 0, fmt.Errorf("image attrs carry no coordinate transformations")
	}
	scale := attrs.Multiscales[0].Datasets[0].CoordinateTransformations[0].Scale
	if len(scale) < 2 {
		return 0, 0, fmt.Errorf("image scale %v has no yx spacing", scale)
	}
	return scale[len(scale)-2], scale[len(scale)-1], nil
}

func contrastLimits(hist *histogram.UIntHistogram) (int, int, error) {
	start, err := hist.Quantile(0.01)
	if err != nil {
		return 0, 0, err
	}
	end, err := hist.Quantile(0.99)
	if err != nil {
		return 0, 0, err
	}
	return int(start), int(end), nil
}

// The region table drives the Wells overlay: one row per well, unknown
// treatment until someone annotates the plate
func writeWellRegionTable(fs fileaccess.FileAccess, bucket string, datasetFolder string, wellNames []string) error {
	var sb strings.Builder
	sb.WriteString("region_id\ttreatment\n")
	for _, name := range wellNames {
		sb.WriteString(name)
		sb.WriteString("\tUnknown\n")
	}

	tablePath := path.Join(datasetFolder, "tables", "wells", "default.tsv")
	err := fs.WriteObject(bucket, tablePath, []byte(sb.String()))
	if err != nil {
		return errors.Wrapf(err, "failed to write well region table to %v", tablePath)
	}
	return nil
}

// The overview shows every channel at once, so each well's transform has to
// move all of that well's channel sources together
func mergeWellTransforms(chOrder []string, accums map[string]*channelAccum) []SourceTransform {
	first := accums[chOrder[0]]
	merged := make([]SourceTransform, 0, len(first.transforms))
	for i, t := range first.transforms {
		affine := AffineTransform{
			Parameters: append([]float64{}, t.Affine.Parameters...),
			Sources:    append([]string{}, t.Affine.Sources...),
		}
		for _, key := range chOrder[1:] {
			if i < len(accums[key].transforms) {
				affine.Sources = append(affine.Sources, accums[key].transforms[i].Affine.Sources...)
			}
		}
		merged = append(merged, SourceTransform{Affine: &affine})
	}
	return merged
}
