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

// File name parser, allowing us to extract acquisition metadata from the
// strict file name conventions of Molecular Devices MetaXpress TIFF exports
package hcsfilename

import (
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/fmi-faim/hcs-core/core/logger"
)

// Plane images are named {name}_{well}[_s{site}][_w{channel}]{GUID}.tif, eg:
// Projection-Mix_E07_s1_w2E94E2AD0-84FB-42FD-B8A8-0F1B9D4E8C10.tif
// The site and channel tags are omitted when the acquisition only has one.
// Thumbnails carry a _thumb tag between the channel and the GUID, so they
// never match (the GUID has to follow the tags directly)
var metaSeriesNameRe = regexp.MustCompile(`^(.*)_([A-Z]+\d{2})(?:_(s\d+))?(?:_(w[1-9]))?([0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12})\.tif$`)

// FileNameMeta - fields of a MetaXpress export name
type FileNameMeta struct {
	Name       string // experiment name as entered in MetaXpress, can itself contain underscores
	WellName   string // plate position, eg B07
	fieldStr   string // site within the well, eg s3. Empty for single-site acquisitions
	channelStr string // wavelength, eg w2. Empty for single-wavelength acquisitions
	mdID       string // GUID MetaSeries appends to keep export names unique
	// EXT - always .tif, checked during parse
}

// SiteIndex - the 1-based site (imaged field) number within the well.
// Exports without a site tag are single-site, so index 1
func (m FileNameMeta) SiteIndex() (int, error) {
	if len(m.fieldStr) <= 0 {
		return 1, nil
	}
	i, err := strconv.Atoi(m.fieldStr[1:])
	if err != nil {
		return 0, errors.New("Failed to get site index from: " + m.fieldStr)
	}
	return i, nil
}

// ChannelIndex - the 1-based wavelength number of the plane. Exports
// without a channel tag are single-wavelength, so index 1
func (m FileNameMeta) ChannelIndex() (int, error) {
	if len(m.channelStr) <= 0 {
		return 1, nil
	}
	i, err := strconv.Atoi(m.channelStr[1:])
	if err != nil {
		return 0, errors.New("Failed to get channel index from: " + m.channelStr)
	}
	return i, nil
}

func ParseFileName(fileName string) (FileNameMeta, error) {
	// We often get passed paths so here we ensure we're just dealing with the file name at the end
	fileName = filepath.Base(fileName)

	result := FileNameMeta{}

	match := metaSeriesNameRe.FindStringSubmatch(fileName)
	if match == nil {
		return result, errors.New("Failed to parse meta from file name")
	}

	result.Name = match[1]
	result.WellName = match[2]
	result.fieldStr = match[3]
	result.channelStr = match[4]
	result.mdID = match[5]

	return result, nil
}

// IsThumbnail - MetaXpress writes a preview next to each plane image, tagged
// _thumb before the GUID. They never feed an import
func IsThumbnail(fileName string) bool {
	return strings.Contains(filepath.Base(fileName), "_thumb")
}

// Run through all file names, return a map of file name->parsed meta data for
// the plane images in the list. Thumbnails and non-TIFF files (plate
// description files, logs) are skipped silently, anything else that fails to
// parse is logged and skipped
func GetPlaneFiles(fileNames []string, jobLog logger.ILogger) map[string]FileNameMeta {
	result := map[string]FileNameMeta{}

	for _, file := range fileNames {
		if !strings.EqualFold(filepath.Ext(file), ".tif") || IsThumbnail(file) {
			continue
		}

		meta, err := ParseFileName(file)
		if err != nil {
			jobLog.Infof("Failed to parse \"%v\": %v\n", file, err)
			continue
		}

		result[file] = meta
	}

	return result
}
