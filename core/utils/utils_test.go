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

package utils

import (
	"fmt"
	"sort"
)

func Example_itemInSlice() {
	fmt.Println(ItemInSlice("B07", []string{"B07", "C11"}))
	fmt.Println(ItemInSlice("D05", []string{"B07", "C11"}))
	fmt.Println(ItemInSlice(3, []int{1, 2, 3}))

	// Output:
	// true
	// false
	// true
}

func Example_getMapKeys() {
	wells := map[string][]string{
		"C11": {"img1.tif"},
		"B07": {"img2.tif", "img3.tif"},
	}
	keys := GetMapKeys(wells)
	sort.Strings(keys)
	fmt.Println(keys)

	// Output:
	// [B07 C11]
}

func Example_convertIntSlice() {
	samples8 := []uint8{0, 128, 255}
	fmt.Println(ConvertIntSlice[uint16](samples8))

	// Output:
	// [0 128 255]
}

func Example_makeDeterministicJSON() {
	fmt.Println(MakeDeterministicJSON([]byte(`{"zebra": 1, "apple": 2}`), true))

	// Output:
	// {"apple": 2,"zebra": 1}
}
