package iou

import (
	"math"
	"sort"

	"github.com/arthurkushman/go-hungarian"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MatchingAlgorithm is for algorithm type for matching predicted boxes to ground truth boxes
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmHungarian uses the Hungarian algorithm (Kuhn-Munkres) for optimal assignment
	MatchingAlgorithmHungarian MatchingAlgorithm = iota
	// MatchingAlgorithmGreedy uses a greedy algorithm for faster but potentially suboptimal assignment
	MatchingAlgorithmGreedy
)

// scoreTolerance is the smallest total IoU gain that lets one assignment replace another
const scoreTolerance = 1e-9

func (algorithm MatchingAlgorithm) String() string {
	switch algorithm {
	case MatchingAlgorithmHungarian:
		return "hungarian"
	case MatchingAlgorithmGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// IoUMatrix calculates IoU for every (prediction, ground truth) combination.
// Rows are predictions, columns are ground truth boxes. Returns nil matrix when either side is empty.
func IoUMatrix(preds, truths []Box, format BoxFormat) (*mat.Dense, error) {
	if !format.Valid() {
		return nil, invalidFormat(format)
	}
	if len(preds) == 0 || len(truths) == 0 {
		return nil, nil
	}
	truthCorners := make([]Corners, len(truths))
	for j, truth := range truths {
		truthCorners[j] = cornersOf(truth, format)
	}
	iouMatrix := mat.NewDense(len(preds), len(truths), nil)
	for i, pred := range preds {
		predCorners := cornersOf(pred, format)
		for j := range truthCorners {
			iouMatrix.Set(i, j, IoUCorners(predCorners, truthCorners[j]))
		}
	}
	return iouMatrix, nil
}

// Match assigns rows to columns of IoU matrix one-to-one.
// Returns a slice of [2]int, where each element is {rowIndex, columnIndex}, sorted by row.
// A pair is kept only when its IoU is positive and not below minIoU, so minIoU=0 means "any overlap".
// Result is deterministic for the same matrix.
func Match(iouMatrix *mat.Dense, minIoU float64, algorithm MatchingAlgorithm) ([][2]int, error) {
	if iouMatrix == nil || iouMatrix.IsEmpty() {
		return [][2]int{}, nil
	}
	switch algorithm {
	case MatchingAlgorithmHungarian:
		return matchHungarian(iouMatrix, minIoU), nil
	case MatchingAlgorithmGreedy:
		return matchGreedy(iouMatrix, minIoU), nil
	default:
		return nil, errors.Errorf("unknown matching algorithm %d", uint16(algorithm))
	}
}

// acceptable reports whether pair with given IoU may be matched at all
func acceptable(iouVal, minIoU float64) bool {
	return iouVal > 0 && iouVal >= minIoU
}

// paddedWeights builds square matrix of usable IoU values. Padding and unacceptable pairs are zeros
func paddedWeights(iouMatrix *mat.Dense, minIoU float64) [][]float64 {
	numRows, numCols := iouMatrix.Dims()
	paddedSize := maxInt(numRows, numCols)
	weights := make([][]float64, paddedSize)
	for i := 0; i < paddedSize; i++ {
		weights[i] = make([]float64, paddedSize)
		if i >= numRows {
			continue
		}
		for j := 0; j < numCols; j++ {
			if iouVal := iouMatrix.At(i, j); acceptable(iouVal, minIoU) {
				weights[i][j] = iouVal
			}
		}
	}
	return weights
}

// matchHungarian solves maximization problem over zero-padded square matrix.
// Exact deterministic assignment is the baseline; go-hungarian and greedy results replace it
// only if they are strictly better, so ties always resolve the same way.
func matchHungarian(iouMatrix *mat.Dense, minIoU float64) [][2]int {
	weights := paddedWeights(iouMatrix, minIoU)

	best := solveAssignment(weights)
	bestScore := assignmentScore(weights, best)

	// Nothing can be matched, every assignment scores zero
	if bestScore == 0 {
		return [][2]int{}
	}
	candidates := [][][2]int{
		fromAssignmentsMap(hungarian.SolveMax(copyWeights(weights)), len(weights)),
		matchGreedy(iouMatrix, minIoU),
	}
	for _, candidate := range candidates {
		if score := assignmentScore(weights, candidate); score > bestScore+scoreTolerance {
			best, bestScore = candidate, score
		}
	}
	return filterMatches(iouMatrix, minIoU, best)
}

// fromAssignmentsMap converts go-hungarian output to sorted pairs, skipping duplicate columns
func fromAssignmentsMap(assignmentsMap map[int]map[int]float64, size int) [][2]int {
	pairs := make([][2]int, 0, len(assignmentsMap))
	usedCols := make(map[int]struct{})
	for rowIndex := 0; rowIndex < size; rowIndex++ {
		rowMap, ok := assignmentsMap[rowIndex]
		if !ok {
			continue
		}
		cols := make([]int, 0, len(rowMap))
		for colIndex := range rowMap {
			cols = append(cols, colIndex)
		}
		sort.Ints(cols)
		for _, colIndex := range cols {
			if _, used := usedCols[colIndex]; used || colIndex < 0 || colIndex >= size {
				continue
			}
			usedCols[colIndex] = struct{}{}
			pairs = append(pairs, [2]int{rowIndex, colIndex})
			break
		}
	}
	return pairs
}

// filterMatches drops padding and unacceptable pairs and sorts result by row
func filterMatches(iouMatrix *mat.Dense, minIoU float64, pairs [][2]int) [][2]int {
	numRows, numCols := iouMatrix.Dims()
	matches := make([][2]int, 0, minInt(numRows, numCols))
	for _, pair := range pairs {
		if pair[0] >= numRows || pair[1] >= numCols {
			continue
		}
		if acceptable(iouMatrix.At(pair[0], pair[1]), minIoU) {
			matches = append(matches, pair)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i][0] < matches[j][0]
	})
	return matches
}

func assignmentScore(weights [][]float64, pairs [][2]int) float64 {
	score := 0.0
	for _, pair := range pairs {
		if pair[0] < len(weights) && pair[1] < len(weights) {
			score += weights[pair[0]][pair[1]]
		}
	}
	return score
}

func copyWeights(weights [][]float64) [][]float64 {
	copied := make([][]float64, len(weights))
	for i := range weights {
		copied[i] = append([]float64(nil), weights[i]...)
	}
	return copied
}

// solveAssignment is Kuhn-Munkres with potentials over square matrix, maximizing total weight.
// Rows and columns are scanned in index order, so equal-score assignments always resolve the same way.
func solveAssignment(weights [][]float64) [][2]int {
	n := len(weights)
	// Potentials and matching are 1-indexed, index 0 is a sentinel
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	rowOfCol := make([]int, n+1)
	way := make([]int, n+1)
	for i := 1; i <= n; i++ {
		rowOfCol[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := rowOfCol[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				// Negated weight turns maximization into minimization
				cur := -weights[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[rowOfCol[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if rowOfCol[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			rowOfCol[j0] = rowOfCol[j1]
			j0 = j1
		}
	}
	pairs := make([][2]int, 0, n)
	for j := 1; j <= n; j++ {
		if rowOfCol[j] != 0 {
			pairs = append(pairs, [2]int{rowOfCol[j] - 1, j - 1})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i][0] < pairs[j][0]
	})
	return pairs
}

// matchGreedy walks rows in order and picks best unmatched column for each of them
func matchGreedy(iouMatrix *mat.Dense, minIoU float64) [][2]int {
	numRows, numCols := iouMatrix.Dims()
	matches := make([][2]int, 0, minInt(numRows, numCols))
	matchedCols := make(map[int]struct{})
	for i := 0; i < numRows; i++ {
		bestIoU := 0.0
		bestCol := -1
		for j := 0; j < numCols; j++ {
			if _, found := matchedCols[j]; found {
				continue
			}
			currentIoU := iouMatrix.At(i, j)
			if currentIoU > bestIoU && acceptable(currentIoU, minIoU) {
				bestIoU = currentIoU
				bestCol = j
			}
		}
		if bestCol != -1 {
			matches = append(matches, [2]int{i, bestCol})
			matchedCols[bestCol] = struct{}{}
		}
	}
	return matches
}
