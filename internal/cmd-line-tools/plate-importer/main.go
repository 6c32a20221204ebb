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

package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fmi-faim/hcs-core/core/awsutil"
	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/logger"
	"github.com/fmi-faim/hcs-core/core/timestamper"
	"github.com/fmi-faim/hcs-core/dataimport/converter"
	"github.com/fmi-faim/hcs-core/dataimport/importparams"
	"github.com/fmi-faim/hcs-core/dataimport/planereader"
)

func main() {
	fmt.Println("==============================")
	fmt.Println("=    HCS plate importer      =")
	fmt.Println("==============================")

	ilog := &logger.StdOutLogger{}

	// Source, output and config each take a local path or an s3:// url, so
	// acquisitions on a microscope share can convert straight into a cloud
	// plate store

	var argSource = flag.String("source", "", "Acquisition directory holding the exported TIFFs (local path or s3://bucket/path)")
	var argOutput = flag.String("output", "", "Directory the plate store is created in (local path or s3://bucket/path)")
	var argConfig = flag.String("acquisition-config", "", "Acquisition config JSON describing calibration and channels (local path or s3://bucket/path)")
	var argPlateName = flag.String("plate-name", "", "Name of the plate, also names the zarr root")
	var argOrderName = flag.String("order-name", "", "Order name recorded in the plate attributes")
	var argBarcode = flag.String("barcode", "", "Plate barcode recorded in the plate attributes")
	var argWellCount = flag.Int("well-count", 96, "Plate format: 18, 24, 96 or 384 wells")
	var argBitDepth = flag.Int("bit-depth", 16, "Pixel bit depth of the acquisition: 8 or 16")
	var argWorkers = flag.Int("workers", 4, "How many wells to convert in parallel")

	flag.Parse()

	// Ensure these exist
	if len(*argSource) <= 0 {
		log.Fatalf("source not set")
	}
	if len(*argOutput) <= 0 {
		log.Fatalf("output not set")
	}
	if len(*argConfig) <= 0 {
		log.Fatalf("acquisition-config not set")
	}
	if len(*argPlateName) <= 0 {
		log.Fatalf("plate-name not set")
	}

	var remoteFS fileaccess.FileAccess
	if isS3Url(*argSource) || isS3Url(*argOutput) || isS3Url(*argConfig) {
		sess, err := awsutil.GetSession()
		if err != nil {
			log.Fatalf("AWS GetSession failed: %v", err)
		}

		svc, err := awsutil.GetS3(sess)
		if err != nil {
			log.Fatalf("AWS GetS3 failed: %v", err)
		}

		remoteFS = fileaccess.MakeS3Access(svc)
	}

	localFS := &fileaccess.FSAccess{}

	// Scanning lists the source, and local listing is rooted at a
	// directory, so a local source splits into its parent and base
	srcFS := fileaccess.FileAccess(localFS)
	srcBucket := filepath.Dir(*argSource)
	srcPath := filepath.Base(*argSource)
	if isS3Url(*argSource) {
		srcFS = remoteFS
		srcBucket, srcPath = splitS3Url(*argSource)
	}

	destFS := fileaccess.FileAccess(localFS)
	destBucket := "/"
	destPath := *argOutput
	if isS3Url(*argOutput) {
		destFS = remoteFS
		destBucket, destPath = splitS3Url(*argOutput)
	} else {
		destPath = absPath(destPath)
	}

	cfgFS := fileaccess.FileAccess(localFS)
	cfgBucket := "/"
	cfgPath := *argConfig
	if isS3Url(*argConfig) {
		cfgFS = remoteFS
		cfgBucket, cfgPath = splitS3Url(*argConfig)
	} else {
		cfgPath = absPath(cfgPath)
	}

	cfg, err := importparams.LoadAcquisitionConfig(cfgFS, cfgBucket, cfgPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	params := importparams.PlateImportParams{
		SourcePath:  srcPath,
		OutputPath:  destPath,
		PlateName:   *argPlateName,
		OrderName:   *argOrderName,
		Barcode:     *argBarcode,
		WellCount:   *argWellCount,
		BitDepth:    *argBitDepth,
		WorkerCount: *argWorkers,
	}

	summary, err := converter.ImportPlate(srcFS, srcBucket, destFS, destBucket, params, cfg, planereader.TIFFPlaneReader{}, &timestamper.UnixTimeNowStamper{}, ilog)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Imported plate \"%v\": %v wells, %v planes, %v channels\n", summary.PlateName, len(summary.ConvertedWells), summary.PlaneCount, len(summary.Channels))
}

func isS3Url(location string) bool {
	return strings.HasPrefix(location, "s3://")
}

// Local paths become absolute so they sit under the "/" root of the local
// file access, otherwise path joining would strip their leading slash
func absPath(location string) string {
	result, err := filepath.Abs(location)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return result
}

func splitS3Url(url string) (string, string) {
	bucket, err := fileaccess.GetBucketFromS3Url(url)
	if err != nil {
		log.Fatalf("%v", err)
	}

	urlPath, err := fileaccess.GetPathFromS3Url(url)
	if err != nil {
		log.Fatalf("%v", err)
	}

	return bucket, urlPath
}
