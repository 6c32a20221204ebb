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

// All plate conversions run through here. An acquisition export directory
// goes in, an OME-NGFF plate comes out: group metadata at every level, one
// histogram sidecar per channel per well, a fill-value array scaffold sized
// from the decoded planes, and a plate summary. Pixel chunks are never
// written. Wells convert in parallel, and a plate only gets its root
// attributes once every well made it
package converter

import (
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/histogram"
	"github.com/fmi-faim/hcs-core/core/logger"
	"github.com/fmi-faim/hcs-core/core/ngff"
	"github.com/fmi-faim/hcs-core/core/timestamper"
	"github.com/fmi-faim/hcs-core/core/utils"
	"github.com/fmi-faim/hcs-core/core/wellplate"
	"github.com/fmi-faim/hcs-core/dataimport/importparams"
	"github.com/fmi-faim/hcs-core/dataimport/planereader"
	"github.com/pkg/errors"
)

// ImportPlate - converts one acquisition into a plate under
// <OutputPath>/<PlateName>.zarr and returns the summary it wrote. Source and
// destination each come with their own file access, so exports sitting on a
// local share can convert straight into an S3 plate store. A failed well
// doesn't stop the others, but any failure means no plate attributes and no
// summary, so a partial import never looks complete
func ImportPlate(
	srcFS fileaccess.FileAccess,
	srcBucket string,
	destFS fileaccess.FileAccess,
	destBucket string,
	params importparams.PlateImportParams,
	cfg importparams.AcquisitionConfig,
	reader planereader.PlaneReader,
	ts timestamper.ITimeStamper,
	jobLog logger.ILogger) (SummaryFileData, error) {

	err := params.Validate()
	if err != nil {
		return SummaryFileData{}, err
	}

	layout, err := wellplate.MakeLayout(params.WellCount)
	if err != nil {
		return SummaryFileData{}, err
	}

	jobLog.Infof("Scanning acquisition files in %v...", params.SourcePath)
	scan, err := ScanAcquisition(srcFS, srcBucket, params.SourcePath, layout, jobLog)
	if err != nil {
		return SummaryFileData{}, err
	}

	channels, err := channelConfigs(scan, cfg)
	if err != nil {
		return SummaryFileData{}, err
	}

	chanPos := map[int]int{}
	for i, channel := range scan.Channels {
		chanPos[channel] = i
	}

	plateRoot := path.Join(params.OutputPath, params.PlateName+".zarr")

	jobLog.Infof("Converting %v wells (%v channels) into %v...", len(scan.Wells), len(channels), plateRoot)

	conv := &plateConverter{
		srcFS:      srcFS,
		srcBucket:  srcBucket,
		destFS:     destFS,
		destBucket: destBucket,
		reader:     reader,
		bits:       params.BitDepth,
		objective:  cfg.Objective,
		pixelSizeY: cfg.SpatialCalibrationY,
		pixelSizeX: cfg.SpatialCalibrationX,
		channels:   channels,
		chanPos:    chanPos,
		plateRoot:  plateRoot,
		results:    map[string]wellResult{},
		failed:     map[string]error{},
	}

	var wg sync.WaitGroup
	jobs := make(chan WellScan, len(scan.Wells))

	for i := 0; i < params.WorkerCount; i++ {
		wg.Add(1)
		go conv.convertWellJob(&wg, jobs)
	}

	wellNames := utils.GetMapKeys(scan.Wells)
	sort.Strings(wellNames)
	for _, name := range wellNames {
		jobs <- scan.Wells[name]
	}
	close(jobs)

	wg.Wait()

	if len(conv.failed) > 0 {
		failedNames := utils.GetMapKeys(conv.failed)
		sort.Strings(failedNames)
		for _, name := range failedNames {
			jobLog.Errorf("Well %v failed: %v", name, conv.failed[name])
		}
		return SummaryFileData{}, fmt.Errorf("%v of %v wells failed to convert", len(conv.failed), len(scan.Wells))
	}

	jobLog.Infof("Writing plate attributes...")
	wells := []wellplate.Well{}
	for _, name := range wellNames {
		wells = append(wells, conv.results[name].well)
	}

	attrs, err := ngff.MakePlateAttrs(params.PlateName, params.OrderName, params.Barcode, layout, wells)
	if err != nil {
		return SummaryFileData{}, err
	}

	err = ngff.WritePlateAttrs(destFS, destBucket, plateRoot, attrs)
	if err != nil {
		return SummaryFileData{}, fmt.Errorf("Failed to write plate attributes: %v. Error: %v", plateRoot, err)
	}

	jobLog.Infof("Writing import summary...")
	summary, err := makeSummary(params, scan, channels, conv.results, ts)
	if err != nil {
		return SummaryFileData{}, err
	}

	err = destFS.WriteJSON(destBucket, path.Join(plateRoot, summaryFileName), summary)
	if err != nil {
		return SummaryFileData{}, fmt.Errorf("Failed to write import summary: %v", err)
	}

	jobLog.Infof("Imported plate %v: %v wells, %v planes", params.PlateName, len(scan.Wells), scan.PlaneCount())
	return summary, nil
}

// channelConfigs - the config entries for the scanned wavelengths, in image
// channel order. The config lists every wavelength the acquisition protocol
// defines, file name w tags index into it 1-based
func channelConfigs(scan PlateScan, cfg importparams.AcquisitionConfig) ([]importparams.ChannelConfig, error) {
	result := []importparams.ChannelConfig{}
	for _, channel := range scan.Channels {
		if channel > len(cfg.Channels) {
			return nil, fmt.Errorf("acquisition has channel w%v but the config only declares %v channels", channel, len(cfg.Channels))
		}
		result = append(result, cfg.Channels[channel-1])
	}
	return result, nil
}

// wellResult - what converting one well produced. hists run parallel to the
// converter's channel list, shape is cyx with the largest plane as yx
type wellResult struct {
	well  wellplate.Well
	shape []int
	hists []*histogram.UIntHistogram
}

type plateConverter struct {
	srcFS      fileaccess.FileAccess
	srcBucket  string
	destFS     fileaccess.FileAccess
	destBucket string
	reader     planereader.PlaneReader
	bits       int
	objective  string
	pixelSizeY float64
	pixelSizeX float64
	channels   []importparams.ChannelConfig
	chanPos    map[int]int // wavelength index -> image channel position
	plateRoot  string

	mu      sync.Mutex
	results map[string]wellResult
	failed  map[string]error
}

func (c *plateConverter) convertWellJob(wg *sync.WaitGroup, jobs chan WellScan) {
	defer wg.Done()

	for job := range jobs {
		result, err := c.convertWell(job)

		c.mu.Lock()
		if err != nil {
			c.failed[job.Well.Name()] = err
		} else {
			c.results[job.Well.Name()] = result
		}
		c.mu.Unlock()
	}
}

// convertWell - reads every plane of the well into per-channel histograms and
// writes the well's metadata. All or nothing: the first bad plane fails the
// whole well and nothing gets written for it
func (c *plateConverter) convertWell(job WellScan) (wellResult, error) {
	hists := make([]*histogram.UIntHistogram, len(c.channels))
	for i := range hists {
		hist, err := histogram.NewEmpty(c.bits)
		if err != nil {
			return wellResult{}, err
		}
		hists[i] = hist
	}

	maxHeight, maxWidth := 0, 0

	for _, plane := range job.Planes {
		data, err := c.srcFS.ReadObject(c.srcBucket, plane.Path)
		if err != nil {
			return wellResult{}, errors.Wrapf(err, "failed to read plane %v", plane.Path)
		}

		decoded, err := c.reader.ReadPlane(data)
		if err != nil {
			return wellResult{}, errors.Wrapf(err, "plane %v", plane.Path)
		}

		if decoded.Bits != c.bits {
			return wellResult{}, fmt.Errorf("plane %v is %v bit, expected %v bit", plane.Path, decoded.Bits, c.bits)
		}

		err = hists[c.chanPos[plane.Channel]].Update(decoded.Pixels)
		if err != nil {
			return wellResult{}, errors.Wrapf(err, "plane %v", plane.Path)
		}

		if decoded.Height > maxHeight {
			maxHeight = decoded.Height
		}
		if decoded.Width > maxWidth {
			maxWidth = decoded.Width
		}
	}

	result := wellResult{
		well:  job.Well,
		shape: []int{len(c.channels), maxHeight, maxWidth},
		hists: hists,
	}

	return result, c.saveWell(result)
}

// saveWell - persists one converted well: well attrs mark the image group,
// the image group gets histogram sidecars, the array scaffold and its attrs
func (c *plateConverter) saveWell(result wellResult) error {
	well := result.well

	err := ngff.WriteWellAttrs(c.destFS, c.destBucket, c.plateRoot, well, ngff.MakeWellAttrs())
	if err != nil {
		return errors.Wrapf(err, "failed to write attrs for well %v", well.Name())
	}

	imageGroup := ngff.ImageGroupPath(c.plateRoot, well)

	channelNames := []string{}
	channelMeta := []ngff.ChannelMetadata{}
	for _, channel := range c.channels {
		channelNames = append(channelNames, channel.ChannelName)
		channelMeta = append(channelMeta, ngff.ChannelMetadata{
			ChannelName:      channel.ChannelName,
			DisplayColor:     channel.DisplayColor,
			Wavelength:       channel.Wavelength,
			ExposureTime:     channel.ExposureTime,
			ExposureTimeUnit: channel.ExposureTimeUnit,
			Objective:        c.objective,
		})
	}

	histFiles, err := ngff.WriteChannelHistograms(c.destFS, c.destBucket, imageGroup, channelNames, result.hists)
	if err != nil {
		return errors.Wrapf(err, "failed to write histograms for well %v", well.Name())
	}

	za, err := ngff.MakeZArray(c.bits, result.shape)
	if err != nil {
		return errors.Wrapf(err, "well %v", well.Name())
	}

	err = ngff.WriteZArray(c.destFS, c.destBucket, imageGroup, za)
	if err != nil {
		return errors.Wrapf(err, "failed to write array metadata for well %v", well.Name())
	}

	attrs := ngff.ImageAttrs{
		Multiscales:         ngff.MakeMultiscales(c.pixelSizeY, c.pixelSizeX),
		Omero:               ngff.Omero{Channels: ngff.BuildOmeroChannels(channelMeta, c.bits, result.hists)},
		AcquisitionMetadata: ngff.AcquisitionMetadata{Channels: channelMeta},
		Histograms:          histFiles,
	}

	err = ngff.WriteImageAttrs(c.destFS, c.destBucket, imageGroup, attrs)
	if err != nil {
		return errors.Wrapf(err, "failed to write attrs for image %v", imageGroup)
	}

	return nil
}
