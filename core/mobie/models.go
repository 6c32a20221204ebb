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

// Wiring converted plates into MoBIE projects so they can be browsed
// interactively. Follows the MoBIE spec 0.3 project/dataset JSON layout,
// field names here must match what the viewer expects
package mobie

import (
	"fmt"
	"path"
	"strconv"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
)

// SpecVersion - the MoBIE metadata version we write
const SpecVersion = "0.3.0"

const projectFileName = "project.json"
const datasetFileName = "dataset.json"

// Project - the project.json at the project root, listing its datasets
type Project struct {
	Datasets       []string `json:"datasets"`
	DefaultDataset string   `json:"defaultDataset"`
	Description    string   `json:"description"`
	SpecVersion    string   `json:"specVersion"`
}

// Dataset - the dataset.json of one dataset. Sources name the image (and
// region table) data, views describe how the viewer presents them
type Dataset struct {
	Is2D    bool              `json:"is2D"`
	Sources map[string]Source `json:"sources"`
	Views   map[string]View   `json:"views"`
}

// Source - one named source. Exactly one of the members is set
type Source struct {
	Image   *ImageSource   `json:"image,omitempty"`
	Regions *RegionsSource `json:"regions,omitempty"`
}

// ImageSource - image data locations keyed by file format, eg "ome.zarr"
type ImageSource struct {
	ImageData map[string]ImageDataLocation `json:"imageData"`
}

// ImageDataLocation - where one image lives relative to the dataset folder,
// and which channel of it this source shows
type ImageDataLocation struct {
	RelativePath string `json:"relativePath"`
	Channel      int    `json:"channel"`
}

// RegionsSource - a region table source, eg the wells of a plate
type RegionsSource struct {
	TableData TableData `json:"tableData"`
}

type TableData struct {
	TSV TableLocation `json:"tsv"`
}

type TableLocation struct {
	RelativePath string `json:"relativePath"`
}

// View - one entry in the view menu of the viewer
type View struct {
	UISelectionGroup string            `json:"uiSelectionGroup"`
	IsExclusive      bool              `json:"isExclusive"`
	SourceDisplays   []SourceDisplay   `json:"sourceDisplays"`
	SourceTransforms []SourceTransform `json:"sourceTransforms,omitempty"`
}

// SourceDisplay - display settings for some sources. Exactly one of the
// members is set
type SourceDisplay struct {
	ImageDisplay  *ImageDisplay  `json:"imageDisplay,omitempty"`
	RegionDisplay *RegionDisplay `json:"regionDisplay,omitempty"`
}

// ImageDisplay - how a set of image sources is rendered
type ImageDisplay struct {
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	ContrastLimits []int    `json:"contrastLimits"`
	Opacity        float64  `json:"opacity"`
	Sources        []string `json:"sources"`
}

// RegionDisplay - renders a region table over the sources it annotates
type RegionDisplay struct {
	Name             string              `json:"name"`
	Opacity          float64             `json:"opacity"`
	Lut              string              `json:"lut"`
	Sources          map[string][]string `json:"sources"`
	TableSource      string              `json:"tableSource"`
	Visible          bool                `json:"visible"`
	ShowAsBoundaries bool                `json:"showAsBoundaries"`
}

// SourceTransform - a transformation applied to sources before display
type SourceTransform struct {
	Affine *AffineTransform `json:"affine,omitempty"`
}

// AffineTransform - 12 parameter row-major affine, the translation entries
// place wells on the plate grid
type AffineTransform struct {
	Parameters []float64 `json:"parameters"`
	Sources    []string  `json:"sources"`
}

// NewDataset - an empty 2D dataset ready to take sources and views
func NewDataset() Dataset {
	return Dataset{
		Is2D:    true,
		Sources: map[string]Source{},
		Views:   map[string]View{},
	}
}

// EnsureDataset - registers a dataset name on the project if it isn't
// listed yet. The first dataset registered becomes the default
func (p *Project) EnsureDataset(name string) {
	for _, ds := range p.Datasets {
		if ds == name {
			return
		}
	}
	p.Datasets = append(p.Datasets, name)
	if p.DefaultDataset == "" {
		p.DefaultDataset = name
	}
}

// ReadProject - loads project.json from the project root
func ReadProject(fs fileaccess.FileAccess, bucket string, projectRoot string) (Project, error) {
	proj := Project{}
	err := fs.ReadJSON(bucket, path.Join(projectRoot, projectFileName), &proj, false)
	return proj, err
}

// WriteProject - saves project.json to the project root
func WriteProject(fs fileaccess.FileAccess, bucket string, projectRoot string, proj Project) error {
	return fs.WriteJSON(bucket, path.Join(projectRoot, projectFileName), proj)
}

// ReadDataset - loads dataset.json from the dataset folder
func ReadDataset(fs fileaccess.FileAccess, bucket string, datasetFolder string) (Dataset, error) {
	ds := Dataset{}
	err := fs.ReadJSON(bucket, path.Join(datasetFolder, datasetFileName), &ds, false)
	return ds, err
}

// WriteDataset - saves dataset.json to the dataset folder
func WriteDataset(fs fileaccess.FileAccess, bucket string, datasetFolder string, ds Dataset) error {
	return fs.WriteJSON(bucket, path.Join(datasetFolder, datasetFileName), ds)
}

// HexToRGBA - converts a 6 digit hex colour code to the r=R,g=G,b=B,a=255
// form MoBIE displays want. Anything unparseable comes back white so a
// missing channel colour never breaks the view
func HexToRGBA(hexCode string) string {
	if len(hexCode) < 6 {
		return "r=255,g=255,b=255,a=255"
	}

	rgb := []int64{}
	for c := 0; c < 3; c++ {
		v, err := strconv.ParseInt(hexCode[c*2:c*2+2], 16, 32)
		if err != nil {
			return "r=255,g=255,b=255,a=255"
		}
		rgb = append(rgb, v)
	}

	return fmt.Sprintf("r=%v,g=%v,b=%v,a=255", rgb[0], rgb[1], rgb[2])
}
