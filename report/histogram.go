package report

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"
)

const histBarWidth = 40

// Subsample returns up to max values drawn uniformly without
// replacement, in stable order for a given seed. When len(values) is
// within max the input is returned as is.
func Subsample(values []float64, max int, seed int64) []float64 {
	if len(values) <= max {
		return values
	}
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	out := make([]float64, max)
	for i := 0; i < max; i++ {
		out[i] = values[idx[i]]
	}
	return out
}

// Histogram prints an ASCII histogram of values over equal-width bins.
func Histogram(w io.Writer, title string, values []float64, bins int) {
	fmt.Fprintln(w, title)
	if len(values) == 0 || bins < 1 {
		fmt.Fprintln(w, "  (no data)")
		return
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		fmt.Fprintf(w, "  [%+.3f] %s %d\n", lo, strings.Repeat("#", histBarWidth), len(values))
		return
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		b := int(math.Floor((v - lo) / width))
		if b >= bins { // hi lands in the last bin
			b = bins - 1
		}
		counts[b]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	for b, c := range counts {
		barLen := 0
		if maxCount > 0 {
			barLen = c * histBarWidth / maxCount
		}
		fmt.Fprintf(w, "  [%+.3f, %+.3f) %-*s %d\n",
			lo+float64(b)*width, lo+float64(b+1)*width,
			histBarWidth, strings.Repeat("#", barLen), c)
	}
}
