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
	"path"
	"strings"

	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/histogram"
)

// HistogramFileName - name of a channel's histogram file, eg
// "C00_DAPI_histogram.json". The channel index is 0-based, spaces in the
// channel name become underscores
func HistogramFileName(channelIndex int, channelName string) string {
	name := strings.ReplaceAll(channelName, " ", "_")
	return fmt.Sprintf("C%02d_%v_histogram.json", channelIndex, name)
}

// WriteChannelHistograms - saves one histogram file per channel next to the
// image attributes and returns the file names, in channel order, for the
// attrs histograms list
func WriteChannelHistograms(fs fileaccess.FileAccess, bucket string, imageGroup string, channelNames []string, hists []*histogram.UIntHistogram) ([]string, error) {
	if len(channelNames) != len(hists) {
		return nil, fmt.Errorf("%v channel names for %v histograms", len(channelNames), len(hists))
	}

	fileNames := []string{}
	for i, hist := range hists {
		fileName := HistogramFileName(i, channelNames[i])
		err := fs.WriteJSONNoIndent(bucket, path.Join(imageGroup, fileName), hist.Encode())
		if err != nil {
			return nil, err
		}
		fileNames = append(fileNames, fileName)
	}

	return fileNames, nil
}

// ReadChannelHistogram - loads a histogram file listed in image attrs back
// into queryable form
func ReadChannelHistogram(fs fileaccess.FileAccess, bucket string, imageGroup string, fileName string) (*histogram.UIntHistogram, error) {
	enc := histogram.Encoded{}
	err := fs.ReadJSON(bucket, path.Join(imageGroup, fileName), &enc, false)
	if err != nil {
		return nil, err
	}
	return histogram.Decode(enc)
}
