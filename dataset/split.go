package dataset

import (
	"fmt"
	"math"
	"math/rand"
)

// Split partitions records into training and testing subsets by a
// seeded shuffle of row indices. The same (len(records), frac, seed)
// always produces the same partition; every row lands in exactly one
// subset.
func Split(records []Record, frac float64, seed int64) (train, test []Record, err error) {
	if frac <= 0 || frac >= 1 {
		return nil, nil, fmt.Errorf("split fraction %v outside (0,1)", frac)
	}

	n := len(records)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	nTrain := int(math.Floor(frac * float64(n)))
	train = make([]Record, 0, nTrain)
	test = make([]Record, 0, n-nTrain)
	for pos, i := range idx {
		if pos < nTrain {
			train = append(train, records[i])
		} else {
			test = append(test, records[i])
		}
	}
	return train, test, nil
}
