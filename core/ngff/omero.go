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

	"github.com/fmi-faim/hcs-core/core/histogram"
)

// BuildOmeroChannels - per-channel display metadata. The initial contrast
// window comes from each channel histogram's [0.01, 0.999] quantiles, the
// full window from the bit depth. hists runs parallel to channels
func BuildOmeroChannels(channels []ChannelMetadata, bits int, hists []*histogram.UIntHistogram) []OmeroChannel {
	result := []OmeroChannel{}

	for i, ch := range channels {
		start, end := 0, 0
		if s, err := hists[i].Quantile(0.01); err == nil {
			start = int(s)
		}
		if e, err := hists[i].Quantile(0.999); err == nil {
			end = int(e)
		}
		// Rescaling 0 to 0 breaks napari's display
		if start == end {
			end = end + 1
		}

		result = append(result, OmeroChannel{
			Active:       true,
			Coefficient:  1,
			Color:        ch.DisplayColor,
			Family:       "linear",
			Inverted:     false,
			Label:        ch.ChannelName,
			WavelengthID: fmt.Sprintf("C%02d", i+1),
			Window: OmeroWindow{
				Min:   0,
				Max:   (1 << bits) - 1,
				Start: start,
				End:   end,
			},
		})
	}

	return result
}
