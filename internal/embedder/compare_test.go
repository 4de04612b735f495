package embedder

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        Descriptor
		b        Descriptor
		expected float64
	}{
		{"identical", Descriptor{1, 0, 0}, Descriptor{1, 0, 0}, 1},
		{"orthogonal", Descriptor{1, 0}, Descriptor{0, 1}, 0},
		{"opposite", Descriptor{1, 0}, Descriptor{-1, 0}, -1},
		{"scaled copies", Descriptor{1, 2, 3}, Descriptor{2, 4, 6}, 1},
		{"length mismatch", Descriptor{1, 0}, Descriptor{1, 0, 0}, 0},
		{"empty", Descriptor{}, Descriptor{}, 0},
		{"zero vector", Descriptor{0, 0}, Descriptor{1, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	a := Descriptor{1, 0, 0}
	near := Descriptor{0.9, 0.1, 0}
	far := Descriptor{0, 1, 0}

	if !Matches(a, a, 0.99) {
		t.Error("identical descriptors must match at any threshold")
	}
	if !Matches(a, near, 0.45) {
		t.Error("similar descriptors should match at the default threshold")
	}
	if Matches(a, far, 0.45) {
		t.Error("orthogonal descriptors must not match")
	}
}
