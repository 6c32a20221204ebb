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

// Reading and writing of the OME-NGFF HCS metadata hierarchy: plate, well and
// image attributes plus the per-channel histogram files stored next to them.
// Metadata JSON forms are pinned by NGFF 0.4, so field names and nesting here
// must not change
package ngff

import (
	"fmt"
	"sort"

	"github.com/fmi-faim/hcs-core/core/wellplate"
)

// Version - the NGFF metadata version we read and write
const Version = "0.4"

// PlateAttrs - attributes of the plate root group. OrderName and Barcode
// ride along at the top level, next to the NGFF plate block
type PlateAttrs struct {
	Plate     Plate  `json:"plate"`
	OrderName string `json:"order_name"`
	Barcode   string `json:"barcode"`
}

type Plate struct {
	Columns    []NameEntry `json:"columns"`
	FieldCount int         `json:"field_count"`
	Name       string      `json:"name"`
	Rows       []NameEntry `json:"rows"`
	Version    string      `json:"version"`
	Wells      []PlateWell `json:"wells"`
}

type NameEntry struct {
	Name string `json:"name"`
}

// PlateWell - a well entry in the plate block. Indices are 0-based positions
// in the rows/columns lists
type PlateWell struct {
	ColumnIndex int    `json:"columnIndex"`
	Path        string `json:"path"`
	RowIndex    int    `json:"rowIndex"`
}

// WellAttrs - attributes of a well group ("B/07")
type WellAttrs struct {
	Well Well `json:"well"`
}

type Well struct {
	Images  []WellImage `json:"images"`
	Version string      `json:"version"`
}

type WellImage struct {
	Path string `json:"path"`
}

// ImageAttrs - attributes of an image group within a well ("B/07/0").
// Histograms lists the per-channel histogram files saved next to the
// attributes, in channel order
type ImageAttrs struct {
	Multiscales         []Multiscale        `json:"multiscales"`
	Omero               Omero               `json:"omero"`
	AcquisitionMetadata AcquisitionMetadata `json:"acquisition_metadata"`
	Histograms          []string            `json:"histograms"`
}

type Multiscale struct {
	Axes     []Axis    `json:"axes"`
	Datasets []Dataset `json:"datasets"`
	Version  string    `json:"version"`
}

type Axis struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Unit string `json:"unit,omitempty"`
}

type Dataset struct {
	Path                      string                     `json:"path"`
	CoordinateTransformations []CoordinateTransformation `json:"coordinateTransformations"`
}

type CoordinateTransformation struct {
	Scale []float64 `json:"scale"`
	Type  string    `json:"type"`
}

type Omero struct {
	Channels []OmeroChannel `json:"channels"`
}

// OmeroChannel - how viewers should render one channel
type OmeroChannel struct {
	Active       bool        `json:"active"`
	Coefficient  int         `json:"coefficient"`
	Color        string      `json:"color"`
	Family       string      `json:"family"`
	Inverted     bool        `json:"inverted"`
	Label        string      `json:"label"`
	WavelengthID string      `json:"wavelength_id"`
	Window       OmeroWindow `json:"window"`
}

// OmeroWindow - min/max span the data type's domain, start/end the initial
// contrast setting
type OmeroWindow struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// AcquisitionMetadata - microscope-side channel settings, kept verbatim in
// the image attributes for provenance
type AcquisitionMetadata struct {
	Channels []ChannelMetadata `json:"channels"`
}

type ChannelMetadata struct {
	ChannelName      string  `json:"channel-name"`
	DisplayColor     string  `json:"display-color"`
	Wavelength       int     `json:"wavelength"`
	ExposureTime     float64 `json:"exposure-time"`
	ExposureTimeUnit string  `json:"exposure-time-unit"`
	Objective        string  `json:"objective"`
}

// ZGroup - the marker file content every zarr group directory carries
type ZGroup struct {
	ZarrFormat int `json:"zarr_format"`
}

// MakePlateAttrs - the plate root attributes for the given wells. Rows and
// columns list the full layout grid, wells only what was imaged, sorted by
// plate position
func MakePlateAttrs(name string, orderName string, barcode string, layout wellplate.Layout, wells []wellplate.Well) (PlateAttrs, error) {
	rowNames := layout.RowNames()
	colNames := layout.ColumnNames()
	if rowNames == nil || colNames == nil {
		return PlateAttrs{}, fmt.Errorf("unsupported plate layout: %v wells", int(layout))
	}

	rows := []NameEntry{}
	for _, r := range rowNames {
		rows = append(rows, NameEntry{Name: r})
	}
	cols := []NameEntry{}
	for _, c := range colNames {
		cols = append(cols, NameEntry{Name: c})
	}

	sorted := append([]wellplate.Well{}, wells...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Column < sorted[j].Column
	})

	wellEntries := []PlateWell{}
	for _, w := range sorted {
		wellEntries = append(wellEntries, PlateWell{
			ColumnIndex: w.Column,
			Path:        w.Path(),
			RowIndex:    w.Row,
		})
	}

	return PlateAttrs{
		Plate: Plate{
			Columns:    cols,
			FieldCount: 1,
			Name:       name,
			Rows:       rows,
			Version:    Version,
			Wells:      wellEntries,
		},
		OrderName: orderName,
		Barcode:   barcode,
	}, nil
}

// MakeWellAttrs - well attributes listing its single image group
func MakeWellAttrs() WellAttrs {
	return WellAttrs{
		Well: Well{
			Images:  []WellImage{{Path: "0"}},
			Version: Version,
		},
	}
}

// MakeMultiscales - single-resolution multiscale metadata for a cyx image
// with the given pixel size in micrometers
func MakeMultiscales(pixelSizeY float64, pixelSizeX float64) []Multiscale {
	return []Multiscale{
		{
			Axes: []Axis{
				{Name: "c", Type: "channel"},
				{Name: "y", Type: "space", Unit: "micrometer"},
				{Name: "x", Type: "space", Unit: "micrometer"},
			},
			Datasets: []Dataset{
				{
					Path: "0",
					CoordinateTransformations: []CoordinateTransformation{
						{Scale: []float64{1, pixelSizeY, pixelSizeX}, Type: "scale"},
					},
				},
			},
			Version: Version,
		},
	}
}
