package mcq

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// Above this many vectors the index switches from exact flat search to a
	// clustered approximate layout, trading recall for speed.
	flatIndexMaxVectors = 10000

	ivfMaxClusters     = 100
	ivfTrainIterations = 10
	defaultNProbe      = 1
)

// VectorIndex holds all embedding vectors for one generation run and answers
// nearest-neighbor queries by squared L2 distance. It is built once per
// request and must not be shared between requests.
type VectorIndex struct {
	dim     int
	vectors [][]float32

	// clustered layout; nil when the index is flat
	centroids [][]float32
	lists     [][]int
	nprobe    int
}

// NewVectorIndex builds an index over the given vectors. All vectors must
// share one dimension. Small datasets get an exact flat index; datasets past
// flatIndexMaxVectors are clustered with nlist = min(100, n/10).
func NewVectorIndex(vectors [][]float32) (*VectorIndex, error) {
	if len(vectors) == 0 {
		return nil, errors.New("no vectors to index")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New("zero-dimension vector")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	idx := &VectorIndex{dim: dim, vectors: vectors, nprobe: defaultNProbe}
	if len(vectors) > flatIndexMaxVectors {
		nlist := len(vectors) / 10
		if nlist > ivfMaxClusters {
			nlist = ivfMaxClusters
		}
		idx.train(nlist)
	}
	return idx, nil
}

// Search returns the indices of the k nearest vectors to query, closest
// first. Fewer than k results are returned when the index (or the probed
// cluster lists) holds fewer vectors.
func (idx *VectorIndex) Search(query []float32, k int) ([]int, error) {
	if len(query) != idx.dim {
		return nil, fmt.Errorf("query has dimension %d, want %d", len(query), idx.dim)
	}
	if k <= 0 {
		return nil, nil
	}

	var candidates []int
	if idx.centroids == nil {
		candidates = make([]int, len(idx.vectors))
		for i := range idx.vectors {
			candidates[i] = i
		}
	} else {
		for _, c := range idx.nearestCentroids(query, idx.nprobe) {
			candidates = append(candidates, idx.lists[c]...)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return l2Sq(query, idx.vectors[candidates[a]]) < l2Sq(query, idx.vectors[candidates[b]])
	})
	if k > len(candidates) {
		k = len(candidates)
	}
	return candidates[:k], nil
}

// train runs a few rounds of k-means over the stored vectors and buckets
// every vector under its nearest centroid.
func (idx *VectorIndex) train(nlist int) {
	n := len(idx.vectors)
	if nlist < 1 {
		nlist = 1
	}
	if nlist > n {
		nlist = n
	}

	centroids := make([][]float32, nlist)
	for i := 0; i < nlist; i++ {
		centroids[i] = append([]float32(nil), idx.vectors[i*n/nlist]...)
	}

	assign := make([]int, n)
	for iter := 0; iter < ivfTrainIterations; iter++ {
		changed := false
		for i, v := range idx.vectors {
			best := nearest(centroids, v)
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}

		sums := make([][]float64, nlist)
		counts := make([]int, nlist)
		for i := range sums {
			sums[i] = make([]float64, idx.dim)
		}
		for i, v := range idx.vectors {
			counts[assign[i]]++
			for d, x := range v {
				sums[assign[i]][d] += float64(x)
			}
		}
		for c := 0; c < nlist; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < idx.dim; d++ {
				centroids[c][d] = float32(sums[c][d] / float64(counts[c]))
			}
		}
		if !changed {
			break
		}
	}

	lists := make([][]int, nlist)
	for i := range idx.vectors {
		lists[assign[i]] = append(lists[assign[i]], i)
	}
	idx.centroids = centroids
	idx.lists = lists
}

func (idx *VectorIndex) nearestCentroids(query []float32, nprobe int) []int {
	if nprobe < 1 {
		nprobe = 1
	}
	order := make([]int, len(idx.centroids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return l2Sq(query, idx.centroids[order[a]]) < l2Sq(query, idx.centroids[order[b]])
	})
	if nprobe > len(order) {
		nprobe = len(order)
	}
	return order[:nprobe]
}

func nearest(centroids [][]float32, v []float32) int {
	best := 0
	bestDist := l2Sq(centroids[0], v)
	for c := 1; c < len(centroids); c++ {
		if d := l2Sq(centroids[c], v); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func l2Sq(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
