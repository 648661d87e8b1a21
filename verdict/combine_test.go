package verdict

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/errs"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/streamx"
)

func leafNames() (*ast.ConditionNode, *ast.ConditionNode) {
	return ast.NewConditionNode(ast.Condition{Metric: "cpu", Op: ast.GT}),
		ast.NewConditionNode(ast.Condition{Metric: "mem", Op: ast.GT})
}

func TestCombineWaitsForBothSides(t *testing.T) {
	left, right := leafNames()
	node := ast.NewBinaryNode(ast.OR, left, right)

	l := make(chan streamx.Result[Verdict], 1)
	r := make(chan streamx.Result[Verdict], 1)
	out := Combine(context.Background(), node, l, r)

	base := time.Unix(0, 0)
	l <- streamx.Value(Verdict{NodeName: left.Name(), Value: false, Period: sample.Instant(base)})

	select {
	case v := <-out:
		t.Fatalf("combinator emitted before both sides produced a verdict: %+v", v)
	case <-time.After(20 * time.Millisecond):
	}

	r <- streamx.Value(Verdict{NodeName: right.Name(), Value: true, Period: sample.Instant(base.Add(time.Second))})

	res := <-out
	v, err := res.Get()
	require.NoError(t, err)
	assert.True(t, v.Value, "OR(false, true) must be true")
	assert.Equal(t, node.Name(), v.NodeName)
	assert.Equal(t, base, v.Period.Start)
	assert.Equal(t, base.Add(time.Second), v.Period.End)
}

func TestCombineEmitsOncePerSubsequentInput(t *testing.T) {
	left, right := leafNames()
	node := ast.NewBinaryNode(ast.AND, left, right)

	l := make(chan streamx.Result[Verdict], 4)
	r := make(chan streamx.Result[Verdict], 4)
	out := Combine(context.Background(), node, l, r)

	base := time.Unix(0, 0)
	l <- streamx.Value(Verdict{NodeName: left.Name(), Value: true, Period: sample.Instant(base)})
	r <- streamx.Value(Verdict{NodeName: right.Name(), Value: true, Period: sample.Instant(base)})
	first := <-out
	v1, err := first.Get()
	require.NoError(t, err)
	assert.True(t, v1.Value)

	// A new verdict on the left alone, with the latest right value, must
	// produce exactly one more combined verdict.
	l <- streamx.Value(Verdict{NodeName: left.Name(), Value: false, Period: sample.Instant(base.Add(time.Second))})
	second := <-out
	v2, err := second.Get()
	require.NoError(t, err)
	assert.False(t, v2.Value, "AND(false, true) must be false")
}

func TestCombineForwardsErrorFromEitherSide(t *testing.T) {
	left, right := leafNames()
	node := ast.NewBinaryNode(ast.AND, left, right)

	l := make(chan streamx.Result[Verdict], 1)
	r := make(chan streamx.Result[Verdict], 1)
	out := Combine(context.Background(), node, l, r)

	l <- streamx.Error[Verdict](&errs.UnresolvedVariableError{Variable: "k"})

	res := <-out
	require.True(t, res.IsError())
	_, err := res.Get()
	var target *errs.UnresolvedVariableError
	assert.ErrorAs(t, err, &target)

	_, ok := <-out
	assert.False(t, ok, "combined stream must close after forwarding the terminal error")
}

func TestCombineClosesWhenBothSidesClose(t *testing.T) {
	left, right := leafNames()
	node := ast.NewBinaryNode(ast.OR, left, right)

	l := make(chan streamx.Result[Verdict])
	r := make(chan streamx.Result[Verdict])
	out := Combine(context.Background(), node, l, r)

	close(l)
	close(r)

	_, ok := <-out
	assert.False(t, ok)
}
