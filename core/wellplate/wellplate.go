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

// Naming of wells on multi-well plates, and the row/column grids of the
// plate formats our microscopes image.
package wellplate

import (
	"fmt"
	"strconv"
)

// Layout - the number of wells on a plate, which fixes its row/column grid
type Layout int

const (
	Layout18  Layout = 18
	Layout24  Layout = 24
	Layout96  Layout = 96
	Layout384 Layout = 384
)

var layoutDims = map[Layout]struct{ rows, cols int }{
	Layout18:  {3, 6},
	Layout24:  {4, 6},
	Layout96:  {8, 12},
	Layout384: {16, 24},
}

// MakeLayout - validates a well count (eg from config) as a known plate format
func MakeLayout(wellCount int) (Layout, error) {
	layout := Layout(wellCount)
	if _, ok := layoutDims[layout]; !ok {
		return 0, fmt.Errorf("unsupported plate layout: %v wells", wellCount)
	}
	return layout, nil
}

// RowNames - row names for plate metadata, "A" through the last row.
// Returns nil for an unknown layout
func (l Layout) RowNames() []string {
	dims, ok := layoutDims[l]
	if !ok {
		return nil
	}
	names := []string{}
	for r := 0; r < dims.rows; r++ {
		names = append(names, string(rune('A'+r)))
	}
	return names
}

// ColumnNames - column names for plate metadata, zero-padded "01" onwards.
// Returns nil for an unknown layout
func (l Layout) ColumnNames() []string {
	dims, ok := layoutDims[l]
	if !ok {
		return nil
	}
	names := []string{}
	for c := 0; c < dims.cols; c++ {
		names = append(names, fmt.Sprintf("%02d", c+1))
	}
	return names
}

// Well - a plate position as 0-based row/column indices into the layout grid
type Well struct {
	Row    int
	Column int
}

// ParseWellName - parses an alphanumeric well name as printed on plate masks
// and embedded in microscope export file names, eg "B07". The name must sit
// on the given layout
func ParseWellName(name string, layout Layout) (Well, error) {
	dims, ok := layoutDims[layout]
	if !ok {
		return Well{}, fmt.Errorf("unsupported plate layout: %v wells", int(layout))
	}

	if len(name) < 2 || len(name) > 3 || name[0] < 'A' || name[0] > 'Z' {
		return Well{}, fmt.Errorf("invalid well name \"%v\"", name)
	}

	col, err := strconv.Atoi(name[1:])
	if err != nil {
		return Well{}, fmt.Errorf("invalid well name \"%v\"", name)
	}

	row := int(name[0] - 'A')
	if row >= dims.rows || col < 1 || col > dims.cols {
		return Well{}, fmt.Errorf("well %v is outside a %v well plate", name, int(layout))
	}

	return Well{Row: row, Column: col - 1}, nil
}

// Name - the alphanumeric well name, eg "B07"
func (w Well) Name() string {
	return w.RowName() + w.ColumnName()
}

// RowName - the row letter, eg "B"
func (w Well) RowName() string {
	return string(rune('A' + w.Row))
}

// ColumnName - the zero-padded column name, eg "07". Matches the entries
// ColumnNames generates, so plate metadata stays self-consistent
func (w Well) ColumnName() string {
	return fmt.Sprintf("%02d", w.Column+1)
}

// Path - the row/column storage path of the well group, eg "B/07"
func (w Well) Path() string {
	return w.RowName() + "/" + w.ColumnName()
}
