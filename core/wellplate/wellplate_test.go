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

package wellplate

import "fmt"

func ExampleParseWellName() {
	w, err := ParseWellName("B07", Layout96)
	fmt.Println(w.Row, w.Column, err)
	fmt.Println(w.Name(), w.RowName(), w.ColumnName(), w.Path())

	w, err = ParseWellName("P24", Layout384)
	fmt.Println(w.Row, w.Column, err)

	w, err = ParseWellName("A1", Layout18)
	fmt.Println(w.Name(), err)

	_, err = ParseWellName("J05", Layout96)
	fmt.Println(err)

	_, err = ParseWellName("B13", Layout96)
	fmt.Println(err)

	_, err = ParseWellName("B00", Layout96)
	fmt.Println(err)

	_, err = ParseWellName("7B", Layout96)
	fmt.Println(err)

	_, err = ParseWellName("", Layout96)
	fmt.Println(err)

	_, err = ParseWellName("B07", Layout(42))
	fmt.Println(err)

	// Output:
	// 1 6 <nil>
	// B07 B 07 B/07
	// 15 23 <nil>
	// A01 <nil>
	// well J05 is outside a 96 well plate
	// well B13 is outside a 96 well plate
	// well B00 is outside a 96 well plate
	// invalid well name "7B"
	// invalid well name ""
	// unsupported plate layout: 42 wells
}

func ExampleMakeLayout() {
	layout, err := MakeLayout(384)
	fmt.Println(layout, err)

	_, err = MakeLayout(1536)
	fmt.Println(err)

	// Output:
	// 384 <nil>
	// unsupported plate layout: 1536 wells
}

func ExampleLayout_RowNames() {
	fmt.Println(Layout24.RowNames())
	fmt.Println(Layout24.ColumnNames())
	fmt.Println(Layout96.RowNames())
	fmt.Println(len(Layout384.RowNames()), len(Layout384.ColumnNames()))
	fmt.Println(Layout(7).RowNames())

	// Output:
	// [A B C D]
	// [01 02 03 04 05 06]
	// [A B C D E F G H]
	// 16 24
	// []
}
