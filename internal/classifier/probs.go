package classifier

import "sort"

// Probs is the probability vector returned for one image, indexed by class.
type Probs []float64

// Top5 returns up to five class indices with their confidences, highest first.
func (p Probs) Top5() ([]int, []float64) {
	return p.top(5)
}

// Sorted returns the k highest entries of the full vector.
func (p Probs) Sorted(k int) ([]int, []float64) {
	return p.top(k)
}

func (p Probs) top(k int) ([]int, []float64) {
	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return p[order[a]] > p[order[b]] })
	if k > len(order) {
		k = len(order)
	}
	if k < 0 {
		k = 0
	}
	order = order[:k]
	conf := make([]float64, k)
	for i, idx := range order {
		conf[i] = p[idx]
	}
	return order, conf
}
