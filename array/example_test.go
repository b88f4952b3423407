// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array_test

import (
	"fmt"

	"github.com/born-ml/dope/array"
)

func Example() {
	layout, _ := array.RowMajor(2, 3)
	v, _ := array.New[float64](layout)
	defer v.Release()

	for i := range 2 {
		for j := range 3 {
			v.Set(float64(10*i+j), i, j)
		}
	}

	tr, _ := v.Transpose(1, 0)
	defer tr.Release()

	fmt.Println(v.ToSlice())
	fmt.Println(tr.ToSlice())
	// Output:
	// [0 1 2 10 11 12]
	// [0 10 1 11 2 12]
}

func Example_borrowed() {
	data := []int32{1, 2, 3, 4, 5, 6}
	// Column-major 2x3 over a Go slice; nothing is copied.
	v, _ := array.FromSlice(data, array.Layout2{{Low: 0, High: 2, Stride: 1}, {Low: 0, High: 3, Stride: 2}})
	defer v.Release()

	fmt.Println(v.IsOwned(), v.Get(0, 0), v.Get(1, 2))
	// Output: false 1 6
}

func Example_reverse() {
	v, _ := array.FromSlice([]uint8{1, 2, 3}, array.Layout1{{Low: 0, High: 3, Stride: 1}})
	defer v.Release()

	r, _ := v.Reverse(0)
	defer r.Release()

	fmt.Println(r.Layout(), r.ToSlice(), r.Get(-2))
	// Output: -2:1:-1 [3 2 1] 3
}
