package iou

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Metrics holds detection quality for a set of predictions against ground truth
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
	// Average IoU over true positives
	MeanIoU float64
}

// Evaluator scores predicted boxes against ground truth boxes using one-to-one IoU matching.
type Evaluator struct {
	// Minimum IoU for a prediction to count as true positive
	iouThreshold float64
	// Algorithm to use for matching
	algorithm MatchingAlgorithm
}

// DefaultEvaluator creates an Evaluator with default parameters.
// Default values: iouThreshold=0.5, algorithm=Hungarian
func DefaultEvaluator() *Evaluator {
	return &Evaluator{
		iouThreshold: 0.5,
		algorithm:    MatchingAlgorithmHungarian,
	}
}

// NewEvaluator creates a new instance of Evaluator with specified parameters.
func NewEvaluator(iouThreshold float64, algorithm MatchingAlgorithm) *Evaluator {
	return &Evaluator{
		iouThreshold: iouThreshold,
		algorithm:    algorithm,
	}
}

// Evaluate matches predictions to ground truth on a single frame.
func (ev *Evaluator) Evaluate(preds, truths []Box, format BoxFormat) (Metrics, error) {
	matchedIoU, err := ev.matchFrame(preds, truths, format)
	if err != nil {
		return Metrics{}, err
	}
	return newMetrics(len(preds), len(truths), matchedIoU), nil
}

// EvaluateFrames matches predictions to ground truth frame by frame and aggregates counts.
// preds[i] and truths[i] must describe the same frame.
func (ev *Evaluator) EvaluateFrames(preds, truths [][]Box, format BoxFormat) (Metrics, error) {
	if len(preds) != len(truths) {
		return Metrics{}, errors.Wrapf(ErrShapeMismatch, "predictions have %d frames, ground truth has %d", len(preds), len(truths))
	}
	totalPreds, totalTruths := 0, 0
	matchedIoU := make([]float64, 0)
	for i := range preds {
		frameIoU, err := ev.matchFrame(preds[i], truths[i], format)
		if err != nil {
			return Metrics{}, errors.Wrapf(err, "Can't evaluate frame %d", i)
		}
		totalPreds += len(preds[i])
		totalTruths += len(truths[i])
		matchedIoU = append(matchedIoU, frameIoU...)
	}
	return newMetrics(totalPreds, totalTruths, matchedIoU), nil
}

// matchFrame returns IoU of every accepted (prediction, ground truth) match
func (ev *Evaluator) matchFrame(preds, truths []Box, format BoxFormat) ([]float64, error) {
	iouMatrix, err := IoUMatrix(preds, truths, format)
	if err != nil {
		return nil, err
	}
	matches, err := Match(iouMatrix, ev.iouThreshold, ev.algorithm)
	if err != nil {
		return nil, errors.Wrap(err, "Can't match predictions")
	}
	matchedIoU := make([]float64, 0, len(matches))
	for _, match := range matches {
		matchedIoU = append(matchedIoU, iouMatrix.At(match[0], match[1]))
	}
	return matchedIoU, nil
}

func newMetrics(numPreds, numTruths int, matchedIoU []float64) Metrics {
	tp := len(matchedIoU)
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: numPreds - tp,
		FalseNegatives: numTruths - tp,
	}
	if tp > 0 {
		m.MeanIoU = floats.Sum(matchedIoU) / float64(tp)
	}
	if numPreds > 0 {
		m.Precision = float64(tp) / float64(numPreds)
	}
	if numTruths > 0 {
		m.Recall = float64(tp) / float64(numTruths)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
