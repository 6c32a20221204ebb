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

package hcsfilename

import (
	"fmt"
	"sort"

	"github.com/fmi-faim/hcs-core/core/logger"
	"github.com/fmi-faim/hcs-core/core/utils"
)

func ExampleParseFileName() {
	meta, err := ParseFileName("2023-07-06/92/Projection-Mix_E07_s1_w2E94E2AD0-84FB-42FD-B8A8-0F1B9D4E8C10.tif")
	fmt.Printf("%v|%v|%v|%v\n", err, meta.Name, meta.WellName, meta.mdID)

	site, err := meta.SiteIndex()
	fmt.Println(site, err)

	channel, err := meta.ChannelIndex()
	fmt.Println(channel, err)

	// Experiment names can contain underscores and well-like tokens, the
	// well is the last one before the tags
	meta, err = ParseFileName("MIP_2P_B01_E07_s12_w4C82AFDF1-5EDB-4B37-90D4-6D619C10F450.tif")
	fmt.Printf("%v|%v|%v|%v|%v\n", err, meta.Name, meta.WellName, meta.fieldStr, meta.channelStr)

	// Thumbnails don't parse, the GUID has to follow the tags directly
	_, err = ParseFileName("Projection-Mix_E07_s1_w1_thumb6EFE77C6-B96D-412A-9FD1-710DBDA32821.tif")
	fmt.Println(err)

	_, err = ParseFileName("notes.txt")
	fmt.Println(err)

	// Output:
	// <nil>|Projection-Mix|E07|E94E2AD0-84FB-42FD-B8A8-0F1B9D4E8C10
	// 1 <nil>
	// 2 <nil>
	// <nil>|MIP_2P_B01|E07|s12|w4
	// Failed to parse meta from file name
	// Failed to parse meta from file name
}

func ExampleFileNameMeta_SiteIndex() {
	// Single-site exports drop the site tag
	meta, err := ParseFileName("4Pcs-1Ch_B03_w152C23B9A-EB4C-4DF6-8A7F-F4147A9E7DDE.tif")
	site, siteErr := meta.SiteIndex()
	channel, chErr := meta.ChannelIndex()
	fmt.Println(err, meta.WellName, site, siteErr, channel, chErr)

	// Both tags omitted
	meta, err = ParseFileName("Mono_C05D8E19676-1117-4676-A33F-3EB561B0B8D5.tif")
	site, siteErr = meta.SiteIndex()
	channel, chErr = meta.ChannelIndex()
	fmt.Println(err, meta.WellName, site, siteErr, channel, chErr)

	// Output:
	// <nil> B03 1 <nil> 1 <nil>
	// <nil> C05 1 <nil> 1 <nil>
}

func ExampleIsThumbnail() {
	fmt.Println(IsThumbnail("Projection-Mix_E07_s1_w1_thumb6EFE77C6-B96D-412A-9FD1-710DBDA32821.tif"))
	fmt.Println(IsThumbnail("Projection-Mix_E07_s1_w1B0F67817-5112-4CF8-A2A6-FDA4AD3F2BBE.tif"))

	// Output:
	// true
	// false
}

func ExampleGetPlaneFiles() {
	files := []string{
		"2023-07-06/92/Projection-Mix_E07_s1_w1B0F67817-5112-4CF8-A2A6-FDA4AD3F2BBE.tif",
		"2023-07-06/92/Projection-Mix_E07_s1_w1_thumb6EFE77C6-B96D-412A-9FD1-710DBDA32821.tif",
		"2023-07-06/92/Projection-Mix.HTD",
		"2023-07-06/92/oddball.tif",
		"2023-07-06/92/Projection-Mix_E08_s1_w1C82AFDF1-5EDB-4B37-90D4-6D619C10F450.tif",
	}

	planes := GetPlaneFiles(files, &logger.NullLogger{})

	names := utils.GetMapKeys(planes)
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(planes[name].WellName, name)
	}

	// Output:
	// E07 2023-07-06/92/Projection-Mix_E07_s1_w1B0F67817-5112-4CF8-A2A6-FDA4AD3F2BBE.tif
	// E08 2023-07-06/92/Projection-Mix_E08_s1_w1C82AFDF1-5EDB-4B37-90D4-6D619C10F450.tif
}
