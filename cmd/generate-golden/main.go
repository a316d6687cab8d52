// Command generate-golden writes reference digit strings of π computed by
// an independent binary-splitting evaluation of the Chudnovsky series in
// exact integer arithmetic. The output is JSON mapping each digit count to
// its significant digits.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
)

const (
	seriesA = 13591409
	seriesB = 545140134
	seriesC = 640320

	// guardDigits are computed beyond the requested count and dropped.
	guardDigits = 10
)

var c3over24 = new(big.Int).Div(new(big.Int).Exp(big.NewInt(seriesC), big.NewInt(3), nil), big.NewInt(24))

// bsplit returns P(a,b), Q(a,b) and T(a,b) of the binary-splitting
// recurrence over terms [a, b).
func bsplit(a, b int64) (p, q, t *big.Int) {
	if b-a == 1 {
		if a == 0 {
			p, q = big.NewInt(1), big.NewInt(1)
		} else {
			p = big.NewInt(6*a - 5)
			p.Mul(p, big.NewInt(2*a-1))
			p.Mul(p, big.NewInt(6*a-1))
			q = big.NewInt(a)
			q.Mul(q, q).Mul(q, big.NewInt(a))
			q.Mul(q, c3over24)
		}
		t = big.NewInt(seriesB)
		t.Mul(t, big.NewInt(a)).Add(t, big.NewInt(seriesA))
		t.Mul(t, p)
		if a%2 == 1 {
			t.Neg(t)
		}
		return p, q, t
	}
	m := (a + b) / 2
	p1, q1, t1 := bsplit(a, m)
	p2, q2, t2 := bsplit(m, b)
	p = new(big.Int).Mul(p1, p2)
	q = new(big.Int).Mul(q1, q2)
	t = new(big.Int).Mul(t1, q2)
	t.Add(t, new(big.Int).Mul(p1, t2))
	return p, q, t
}

// piDigits returns the first n significant digits of π.
func piDigits(n int) string {
	if n <= 0 {
		return ""
	}
	terms := int64(float64(n)/14.181647462725477) + 2
	_, q, t := bsplit(0, terms)

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(2*(n+guardDigits))), nil)
	root := new(big.Int).Sqrt(scale.Mul(scale, big.NewInt(10005)))

	num := new(big.Int).Mul(big.NewInt(426880), root)
	num.Mul(num, q)
	s := num.Quo(num, t).String()
	return s[:n]
}

func parseCounts(list string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid digit count %q", field)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func main() {
	digits := flag.String("digits", "15,50,100,1000,10000", "comma-separated digit counts")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	counts, err := parseCounts(*digits)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	golden := make(map[string]string, len(counts))
	for _, n := range counts {
		golden[strconv.Itoa(n)] = piDigits(n)
	}

	data, err := json.MarshalIndent(golden, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
