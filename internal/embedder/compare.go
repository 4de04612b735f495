package embedder

import "math"

// CosineSimilarity computes the cosine similarity between two descriptors.
// Returns a value between -1 and 1, where 1 means identical.
func CosineSimilarity(a, b Descriptor) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Matches returns true if two descriptors have cosine similarity at or
// above the threshold.
func Matches(a, b Descriptor, threshold float64) bool {
	return CosineSimilarity(a, b) >= threshold
}
