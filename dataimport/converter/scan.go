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

package converter

import (
	"fmt"
	"sort"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/hcsfilename"
	"github.com/fmi-faim/hcs-core/core/logger"
	"github.com/fmi-faim/hcs-core/core/utils"
	"github.com/fmi-faim/hcs-core/core/wellplate"
	"github.com/pkg/errors"
)

// PlaneFile - one plane image of the acquisition, located on the plate by
// its file name tags
type PlaneFile struct {
	Path    string
	Site    int // 1-based imaged field within the well
	Channel int // 1-based wavelength index, the w tag of the file name
}

// WellScan - all planes found for one well, the work unit of a conversion
type WellScan struct {
	Well   wellplate.Well
	Planes []PlaneFile
}

// PlateScan - everything a conversion needs to know about an acquisition
// directory before reading any pixels
type PlateScan struct {
	Wells    map[string]WellScan // keyed by well name, eg "B07"
	Channels []int               // distinct wavelength indices seen, ascending
}

// PlaneCount - total plane images across all wells
func (s PlateScan) PlaneCount() int {
	count := 0
	for _, w := range s.Wells {
		count += len(w.Planes)
	}
	return count
}

// ScanAcquisition - lists an acquisition directory and groups its plane
// images by well. Thumbnails and unparsable files are skipped (logged by the
// name parser), but a well name that doesn't sit on the plate layout is a
// data error and fails the scan. Every well must cover the full wavelength
// set, otherwise channel positions would silently differ between wells
func ScanAcquisition(fs fileaccess.FileAccess, bucket string, sourcePath string, layout wellplate.Layout, jobLog logger.ILogger) (PlateScan, error) {
	files, err := fs.ListObjects(bucket, sourcePath)
	if err != nil {
		return PlateScan{}, errors.Wrapf(err, "failed to list acquisition files under %v", sourcePath)
	}

	planeFiles := hcsfilename.GetPlaneFiles(files, jobLog)
	if len(planeFiles) <= 0 {
		return PlateScan{}, fmt.Errorf("no plane images found under %v", sourcePath)
	}

	scan := PlateScan{Wells: map[string]WellScan{}}
	channels := map[int]bool{}

	// Sorted so failures hit the same file no matter the map order
	names := utils.GetMapKeys(planeFiles)
	sort.Strings(names)

	for _, file := range names {
		meta := planeFiles[file]

		well, err := wellplate.ParseWellName(meta.WellName, layout)
		if err != nil {
			return PlateScan{}, errors.Wrapf(err, "bad well in file name %v", file)
		}

		site, err := meta.SiteIndex()
		if err != nil {
			return PlateScan{}, errors.Wrapf(err, "bad site in file name %v", file)
		}

		channel, err := meta.ChannelIndex()
		if err != nil {
			return PlateScan{}, errors.Wrapf(err, "bad channel in file name %v", file)
		}

		entry := scan.Wells[meta.WellName]
		entry.Well = well
		entry.Planes = append(entry.Planes, PlaneFile{Path: file, Site: site, Channel: channel})
		scan.Wells[meta.WellName] = entry

		channels[channel] = true
	}

	scan.Channels = utils.GetMapKeys(channels)
	sort.Ints(scan.Channels)

	wellNames := utils.GetMapKeys(scan.Wells)
	sort.Strings(wellNames)

	for _, name := range wellNames {
		seen := map[int]bool{}
		for _, plane := range scan.Wells[name].Planes {
			seen[plane.Channel] = true
		}
		for _, channel := range scan.Channels {
			if !seen[channel] {
				return PlateScan{}, fmt.Errorf("well %v is missing channel w%v", name, channel)
			}
		}
	}

	// Channel-major so each channel histogram sees its planes in site order
	for _, entry := range scan.Wells {
		planes := entry.Planes
		sort.Slice(planes, func(i, j int) bool {
			if planes[i].Channel != planes[j].Channel {
				return planes[i].Channel < planes[j].Channel
			}
			if planes[i].Site != planes[j].Site {
				return planes[i].Site < planes[j].Site
			}
			return planes[i].Path < planes[j].Path
		})
	}

	return scan, nil
}
