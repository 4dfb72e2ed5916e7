package mcq

import (
	"testing"
)

func TestVectorIndex_FlatSearch(t *testing.T) {
	vectors := [][]float32{
		{0, 0},
		{1, 0},
		{5, 5},
		{0.9, 0.1},
	}
	idx, err := NewVectorIndex(vectors)
	if err != nil {
		t.Fatalf("NewVectorIndex() error = %v", err)
	}

	hits, err := idx.Search([]float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 2 || hits[0] != 1 || hits[1] != 3 {
		t.Errorf("Search() = %v, want [1 3]", hits)
	}
}

func TestVectorIndex_SearchCapsAtSize(t *testing.T) {
	idx, err := NewVectorIndex([][]float32{{0}, {1}})
	if err != nil {
		t.Fatalf("NewVectorIndex() error = %v", err)
	}
	hits, err := idx.Search([]float32{0}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("Search() returned %d hits, want 2", len(hits))
	}
}

func TestVectorIndex_DimensionMismatch(t *testing.T) {
	if _, err := NewVectorIndex([][]float32{{0, 0}, {1}}); err == nil {
		t.Error("NewVectorIndex() accepted mixed dimensions")
	}

	idx, err := NewVectorIndex([][]float32{{0, 0}})
	if err != nil {
		t.Fatalf("NewVectorIndex() error = %v", err)
	}
	if _, err := idx.Search([]float32{1}, 1); err == nil {
		t.Error("Search() accepted query with wrong dimension")
	}
}

func TestVectorIndex_ClusteredSearch(t *testing.T) {
	// Past the flat-index cutoff the index must train clusters and still
	// find the exact vector a query lands on.
	n := flatIndexMaxVectors + 100
	vectors := make([][]float32, n)
	for i := range vectors {
		vectors[i] = []float32{float32(i) / float32(n), 0}
	}

	idx, err := NewVectorIndex(vectors)
	if err != nil {
		t.Fatalf("NewVectorIndex() error = %v", err)
	}
	if idx.centroids == nil {
		t.Fatal("index above cutoff was not clustered")
	}

	hits, err := idx.Search([]float32{0, 0}, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 1 || hits[0] != 0 {
		t.Errorf("Search() = %v, want [0]", hits)
	}
}
