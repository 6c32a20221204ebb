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
	"sort"

	"github.com/fmi-faim/hcs-core/core/histogram"
	"github.com/fmi-faim/hcs-core/core/timestamper"
	"github.com/fmi-faim/hcs-core/core/utils"
	"github.com/fmi-faim/hcs-core/dataimport/importparams"
	"github.com/pkg/errors"
)

const summaryFileName = "summary.json"

// SummaryFileData - structure of the plate summary JSON file written next to
// the plate attributes after a conversion
type SummaryFileData struct {
	PlateName           string           `json:"plate_name"`
	OrderName           string           `json:"order_name"`
	Barcode             string           `json:"barcode"`
	WellCount           int              `json:"well_count"`
	ConvertedWells      []string         `json:"converted_wells"`
	PlaneCount          int              `json:"plane_count"`
	BitDepth            int              `json:"bit_depth"`
	Channels            []ChannelSummary `json:"channels"`
	CreationUnixTimeSec int64            `json:"create_unixtime_sec"`
}

// ChannelSummary - intensity statistics of one channel across the whole
// plate, from the folded well histograms
type ChannelSummary struct {
	Name   string  `json:"name"`
	Count  uint64  `json:"count"`
	Min    uint16  `json:"min"`
	Max    uint16  `json:"max"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	P01    uint16  `json:"p01"`
	Median uint16  `json:"median"`
	P999   uint16  `json:"p999"`
}

func makeSummary(params importparams.PlateImportParams, scan PlateScan, channels []importparams.ChannelConfig, results map[string]wellResult, ts timestamper.ITimeStamper) (SummaryFileData, error) {
	plateHists := []*histogram.UIntHistogram{}
	for range channels {
		hist, err := histogram.NewEmpty(params.BitDepth)
		if err != nil {
			return SummaryFileData{}, err
		}
		plateHists = append(plateHists, hist)
	}

	wellNames := utils.GetMapKeys(results)
	sort.Strings(wellNames)

	for _, name := range wellNames {
		for i, hist := range results[name].hists {
			err := plateHists[i].Combine(hist)
			if err != nil {
				return SummaryFileData{}, errors.Wrapf(err, "failed to fold histograms of well %v", name)
			}
		}
	}

	channelSummaries := []ChannelSummary{}
	for i, hist := range plateHists {
		summary, err := summarizeChannel(channels[i].ChannelName, hist)
		if err != nil {
			return SummaryFileData{}, err
		}
		channelSummaries = append(channelSummaries, summary)
	}

	return SummaryFileData{
		PlateName:           params.PlateName,
		OrderName:           params.OrderName,
		Barcode:             params.Barcode,
		WellCount:           params.WellCount,
		ConvertedWells:      wellNames,
		PlaneCount:          scan.PlaneCount(),
		BitDepth:            params.BitDepth,
		Channels:            channelSummaries,
		CreationUnixTimeSec: ts.GetTimeNowSec(),
	}, nil
}

func summarizeChannel(name string, hist *histogram.UIntHistogram) (ChannelSummary, error) {
	min, err := hist.Min()
	if err != nil {
		return ChannelSummary{}, errors.Wrapf(err, "channel %v", name)
	}

	max, err := hist.Max()
	if err != nil {
		return ChannelSummary{}, errors.Wrapf(err, "channel %v", name)
	}

	mean, err := hist.Mean()
	if err != nil {
		return ChannelSummary{}, errors.Wrapf(err, "channel %v", name)
	}

	std, err := hist.Std()
	if err != nil {
		return ChannelSummary{}, errors.Wrapf(err, "channel %v", name)
	}

	p01, err := hist.Quantile(0.01)
	if err != nil {
		return ChannelSummary{}, errors.Wrapf(err, "channel %v", name)
	}

	median, err := hist.Quantile(0.5)
	if err != nil {
		return ChannelSummary{}, errors.Wrapf(err, "channel %v", name)
	}

	p999, err := hist.Quantile(0.999)
	if err != nil {
		return ChannelSummary{}, errors.Wrapf(err, "channel %v", name)
	}

	return ChannelSummary{
		Name:   name,
		Count:  hist.Count(),
		Min:    min,
		Max:    max,
		Mean:   mean,
		Std:    std,
		P01:    p01,
		Median: median,
		P999:   p999,
	}, nil
}
