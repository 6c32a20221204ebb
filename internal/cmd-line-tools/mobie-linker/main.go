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
	"path"
	"path/filepath"
	"strings"

	"github.com/fmi-faim/hcs-core/core/awsutil"
	"github.com/fmi-faim/hcs-core/core/fileaccess"
	"github.com/fmi-faim/hcs-core/core/logger"
	"github.com/fmi-faim/hcs-core/core/mobie"
)

func main() {
	fmt.Println("==============================")
	fmt.Println("=     HCS MoBIE linker       =")
	fmt.Println("==============================")

	// Logs go to stderr so the result line stays alone on stdout
	ilog := &logger.StdErrLogger{}
	ilog.SetLogLevel(logger.LogInfo)

	var argProject = flag.String("project", "", "MoBIE project root, created if missing (local path or s3://bucket/path)")
	var argDataset = flag.String("dataset", "", "Dataset name within the project")
	var argPlate = flag.String("plate", "", "Root of the converted plate to link (same store as the project)")
	var argView = flag.String("view", "default", "Name of the overview combining all channels")
	var argGap = flag.Int("gap", 0, "Pixels to leave between wells in the viewer")
	var argDescription = flag.String("description", "", "Project description, used when the project is created")

	flag.Parse()

	// Ensure these exist
	if len(*argProject) <= 0 {
		log.Fatalf("project not set")
	}
	if len(*argDataset) <= 0 {
		log.Fatalf("dataset not set")
	}
	if len(*argPlate) <= 0 {
		log.Fatalf("plate not set")
	}

	// Sources get linked through paths relative to the dataset folder, so
	// the plate has to live in the same store as the project
	fs := fileaccess.FileAccess(&fileaccess.FSAccess{})
	bucket := "/"
	projectRoot := ""
	platePath := ""

	if strings.HasPrefix(*argProject, "s3://") {
		if !strings.HasPrefix(*argPlate, "s3://") {
			log.Fatalf("project is in S3 but plate isn't: %v", *argPlate)
		}

		sess, err := awsutil.GetSession()
		if err != nil {
			log.Fatalf("AWS GetSession failed: %v", err)
		}

		svc, err := awsutil.GetS3(sess)
		if err != nil {
			log.Fatalf("AWS GetS3 failed: %v", err)
		}

		fs = fileaccess.MakeS3Access(svc)

		bucket, projectRoot = splitS3Url(*argProject)

		plateBucket, plateLoc := splitS3Url(*argPlate)
		if plateBucket != bucket {
			log.Fatalf("project bucket %v differs from plate bucket %v", bucket, plateBucket)
		}
		platePath = plateLoc
	} else {
		projectRoot = absPath(*argProject)
		platePath = absPath(*argPlate)
	}

	proj, err := mobie.ReadProject(fs, bucket, projectRoot)
	if err != nil {
		if !fs.IsNotFoundError(err) {
			log.Fatalf("Failed to read project: %v", err)
		}

		ilog.Infof("Creating new project at %v", projectRoot)
		proj = mobie.Project{
			Datasets:    []string{},
			Description: *argDescription,
			SpecVersion: mobie.SpecVersion,
		}
	}

	params := mobie.LinkParams{
		DatasetFolder: path.Join(projectRoot, *argDataset),
		PlatePath:     platePath,
		ViewName:      *argView,
		Gap:           *argGap,
	}

	err = mobie.AddPlateToDataset(fs, bucket, params, ilog)
	if err != nil {
		log.Fatalf("Linking failed: %v", err)
	}

	proj.EnsureDataset(*argDataset)
	err = mobie.WriteProject(fs, bucket, projectRoot, proj)
	if err != nil {
		log.Fatalf("Failed to write project: %v", err)
	}

	fmt.Printf("Linked plate %v into dataset \"%v\"\n", platePath, *argDataset)
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

// Local paths become absolute so they sit under the "/" root of the local
// file access, otherwise path joining would strip their leading slash
func absPath(location string) string {
	result, err := filepath.Abs(location)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return result
}
