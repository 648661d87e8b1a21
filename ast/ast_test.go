package ast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/errs"
)

func simpleLeaf(metric string, op CompareOp, threshold float64) *ConditionNode {
	return NewConditionNode(Condition{Metric: metric, Op: op, Threshold: arith.Constant{Value: threshold}})
}

func aggLeaf(metric string, kind AggKind, window time.Duration, op CompareOp, threshold float64) *ConditionNode {
	return NewConditionNode(Condition{
		Metric: metric, Op: op, Threshold: arith.Constant{Value: threshold},
		IsAggregation: true, AggKind: kind, Window: window,
	})
}

func TestNodeNaming(t *testing.T) {
	a := simpleLeaf("cpu", GT, 80)
	b := simpleLeaf("cpu", GT, 80)
	assert.NotEqual(t, a.Name(), b.Name(), "leaf names must be unique even for identical conditions")

	bin1 := NewBinaryNode(AND, a, b)
	bin2 := NewBinaryNode(AND, a, b)
	assert.Equal(t, bin1.Name(), bin2.Name(), "combinator names must be deterministic given the same children")
}

func TestAcceptDispatch(t *testing.T) {
	leaf := simpleLeaf("cpu", GT, 80)
	tree := NewBinaryNode(OR, leaf, simpleLeaf("mem", LT, 10))

	var visited []string
	v := &recordingVisitor{out: &visited}
	Accept[struct{}](tree, v)
	assert.Equal(t, []string{"binary", "condition", "condition"}, visited)
}

type recordingVisitor struct{ out *[]string }

func (r *recordingVisitor) VisitCondition(n *ConditionNode) struct{} {
	*r.out = append(*r.out, "condition")
	return struct{}{}
}

func (r *recordingVisitor) VisitBinary(n *BinaryNode) struct{} {
	*r.out = append(*r.out, "binary")
	Accept[struct{}](n.Left, r)
	Accept[struct{}](n.Right, r)
	return struct{}{}
}

func TestCollectMetrics(t *testing.T) {
	tree := NewBinaryNode(AND,
		simpleLeaf("cpu", GT, 80),
		NewBinaryNode(OR, simpleLeaf("mem", LT, 10), simpleLeaf("cpu", GE, 90)),
	)
	metrics := CollectMetrics(tree)
	assert.ElementsMatch(t, []string{"cpu", "mem"}, setKeys(metrics))
}

func TestCollectVariables(t *testing.T) {
	threshold, err := arith.Parse("baseline * 2")
	require.NoError(t, err)
	leaf := NewConditionNode(Condition{Metric: "cpu", Op: GT, Threshold: threshold})
	vars := CollectVariables(leaf)
	assert.ElementsMatch(t, []string{"baseline"}, setKeys(vars))
}

func TestAnalyzeComplexity(t *testing.T) {
	threshold, err := arith.Parse("a + b * 2")
	require.NoError(t, err)
	agg := NewConditionNode(Condition{
		Metric: "cpu", Op: GT, Threshold: threshold,
		IsAggregation: true, AggKind: Avg, Window: time.Minute,
	})
	tree := NewBinaryNode(AND, agg, simpleLeaf("mem", LT, 10))

	report := AnalyzeComplexity(tree)
	assert.Equal(t, 3, report.NodeCount)
	assert.Equal(t, 2, report.ConditionCount)
	assert.Equal(t, 1, report.AggregationCount)
	assert.Equal(t, 3, report.MaxDepth) // aggregation leaf depth 2 + the AND combinator
	assert.Equal(t, 3, report.OperatorCount) // 2 arithmetic + 1 combinator
	assert.False(t, report.IsHighComplexity())
	assert.NotEmpty(t, report.String())
}

func TestPrintRoundTripsThroughThresholdText(t *testing.T) {
	leaf := aggLeaf("cpu", Max, 5*time.Minute, GE, 90)
	text := Print(leaf)
	assert.Equal(t, "max(cpu, 5m) >= 90", text)

	tree := NewBinaryNode(OR, simpleLeaf("cpu", GT, 80), simpleLeaf("mem", LT, 10))
	assert.Equal(t, "(cpu > 80 || mem < 10)", Print(tree))
}

func TestValidateRejectsUnknownMetric(t *testing.T) {
	leaf := simpleLeaf("disk", GT, 80)
	_, err := Validate(leaf, "r1", NewStaticSet("cpu", "mem"), nil)
	require.Error(t, err)
	var invalid *errs.InvalidExpressionError
	require.ErrorAs(t, err, &invalid)
}

func TestValidateRejectsUnknownVariable(t *testing.T) {
	threshold, err := arith.Parse("baseline")
	require.NoError(t, err)
	leaf := NewConditionNode(Condition{Metric: "cpu", Op: GT, Threshold: threshold})
	_, err = Validate(leaf, "r1", NewStaticSet("cpu"), NewStaticSet("other"))
	require.Error(t, err)
}

func TestValidateRejectsNonPositiveWindow(t *testing.T) {
	leaf := aggLeaf("cpu", Avg, 0, GT, 80)
	_, err := Validate(leaf, "r1", NewStaticSet("cpu"), nil)
	require.Error(t, err)
}

func TestValidateWarnsOnOversizedWindow(t *testing.T) {
	leaf := aggLeaf("cpu", Avg, 48*time.Hour, GT, 80)
	warnings, err := Validate(leaf, "r1", NewStaticSet("cpu"), nil)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
}

func TestValidateWarnsOnAggregationFieldsOnSimpleLeaf(t *testing.T) {
	leaf := simpleLeaf("cpu", GT, 80)
	leaf.Cond.AggKind = Avg
	warnings, err := Validate(leaf, "r1", NewStaticSet("cpu"), nil)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
}

func TestValidateAcceptsValidAggregation(t *testing.T) {
	leaf := aggLeaf("cpu", Sum, time.Minute, LE, 1000)
	warnings, err := Validate(leaf, "r1", NewStaticSet("cpu"), nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func setKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
