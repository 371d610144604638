package model

import (
	"math"
	"math/rand"
	"sort"
)

// TreeNode is one node of a CART decision tree. Leaf nodes carry the majority
// class of the samples that reached them; internal nodes route rows by
// comparing a feature value against the threshold.
type TreeNode struct {
	Feature    int       `json:"feature,omitempty"`
	Threshold  float64   `json:"threshold,omitempty"`
	Left       *TreeNode `json:"left,omitempty"`
	Right      *TreeNode `json:"right,omitempty"`
	Leaf       bool      `json:"leaf,omitempty"`
	Prediction float64   `json:"prediction"`
}

// predict routes a row down the tree to a leaf.
func (n *TreeNode) predict(row []float64) float64 {
	node := n
	for !node.Leaf {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Prediction
}

type treeParams struct {
	maxDepth       int
	minLeafSamples int
	featureSubset  int
}

// buildTree grows a CART tree on the rows referenced by indices, splitting on
// gini impurity over a random feature subset at each node.
func buildTree(x [][]float64, y []float64, indices []int, depth int, params treeParams, rng *rand.Rand) *TreeNode {
	majority, pure := majorityClass(y, indices)
	if pure || depth >= params.maxDepth || len(indices) < 2*params.minLeafSamples {
		return &TreeNode{Leaf: true, Prediction: majority}
	}

	feature, threshold, ok := bestSplit(x, y, indices, params, rng)
	if !ok {
		return &TreeNode{Leaf: true, Prediction: majority}
	}

	var left, right []int
	for _, idx := range indices {
		if x[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	if len(left) < params.minLeafSamples || len(right) < params.minLeafSamples {
		return &TreeNode{Leaf: true, Prediction: majority}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(x, y, left, depth+1, params, rng),
		Right:     buildTree(x, y, right, depth+1, params, rng),
	}
}

// majorityClass returns the majority label among the indexed rows and whether
// the set is pure. Ties resolve to the negative class.
func majorityClass(y []float64, indices []int) (float64, bool) {
	positives := 0
	for _, idx := range indices {
		if y[idx] == 1 {
			positives++
		}
	}
	pure := positives == 0 || positives == len(indices)
	if positives*2 > len(indices) {
		return 1, pure
	}
	return 0, pure
}

// bestSplit evaluates candidate thresholds on a random feature subset and
// returns the split with the lowest weighted gini impurity.
func bestSplit(x [][]float64, y []float64, indices []int, params treeParams, rng *rand.Rand) (int, float64, bool) {
	numFeatures := len(x[indices[0]])
	subset := rng.Perm(numFeatures)
	if params.featureSubset < numFeatures {
		subset = subset[:params.featureSubset]
	}

	bestGini := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0

	values := make([]float64, 0, len(indices))
	for _, feature := range subset {
		values = values[:0]
		for _, idx := range indices {
			values = append(values, x[idx][feature])
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2
			gini := splitGini(x, y, indices, feature, threshold)
			if gini < bestGini {
				bestGini = gini
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

// splitGini computes the sample-weighted gini impurity of the two partitions
// induced by feature <= threshold.
func splitGini(x [][]float64, y []float64, indices []int, feature int, threshold float64) float64 {
	var leftN, leftPos, rightN, rightPos int
	for _, idx := range indices {
		if x[idx][feature] <= threshold {
			leftN++
			if y[idx] == 1 {
				leftPos++
			}
		} else {
			rightN++
			if y[idx] == 1 {
				rightPos++
			}
		}
	}

	total := float64(leftN + rightN)
	return float64(leftN)/total*gini(leftPos, leftN) + float64(rightN)/total*gini(rightPos, rightN)
}

func gini(positives, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(positives) / float64(n)
	return 2 * p * (1 - p)
}
