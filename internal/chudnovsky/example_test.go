package chudnovsky

import (
	"context"
	"fmt"
)

func ExamplePlan() {
	p, err := Plan(1000)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p)
	// Output: 1000 digits, 3322 bits, 71 terms
}

func ExamplePartition() {
	ranges, _ := Partition(10, 3)
	fmt.Println(ranges)
	// Output: [[0, 4) [4, 7) [7, 10)]
}

func ExampleDefaultFactory() {
	factory := NewDefaultFactory()
	fmt.Println(factory.List())

	calc, err := factory.Get("parity")
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := calc.Calculate(context.Background(), nil, 0, 30, Options{Workers: 4})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Digits(0))
	// Output:
	// [negbase parity]
	// 314159265358979323846264338327 1
}
