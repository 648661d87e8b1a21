package condstream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/condstream/arith"
	"github.com/rulego/condstream/ast"
	"github.com/rulego/condstream/clock"
	"github.com/rulego/condstream/errs"
	"github.com/rulego/condstream/sample"
	"github.com/rulego/condstream/streamx"
	"github.com/rulego/condstream/window"
)

func at(t *testing.T, seconds float64) time.Time {
	t.Helper()
	return time.Unix(0, 0).UTC().Add(time.Duration(seconds * float64(time.Second)))
}

func pushAndClose(src chan streamx.Result[sample.Sample], fc *clock.FakeClock, samples ...sample.Sample) {
	for _, s := range samples {
		src <- streamx.Value(s)
	}
	fc.Step(window.DefaultReorderInterval)
	close(src)
}

// Scenario 1 (spec §8): OR, single side trips.
func TestEndToEndORSingleSideTrips(t *testing.T) {
	fc := clock.NewFake(time.Unix(0, 0).UTC())
	eng := New(WithClock(fc))
	src := make(chan streamx.Result[sample.Sample], 16)
	eng.Start(src)
	defer eng.Close()

	rule, err := eng.Build(context.Background(), "avg(cpu, 3s) > 70 || avg(mem, 3s) > 80")
	require.NoError(t, err)
	defer rule.Close()

	pushAndClose(src, fc,
		sample.New("cpu", 85, at(t, 0)), sample.New("cpu", 85, at(t, 1)), sample.New("cpu", 85, at(t, 2)),
		sample.New("mem", 60, at(t, 0)), sample.New("mem", 60, at(t, 1)), sample.New("mem", 60, at(t, 2)),
	)

	res, ok := <-rule.C()
	require.True(t, ok)
	v, err := res.Get()
	require.NoError(t, err)
	assert.True(t, v.Value, "cpu avg 85 > 70 should trip the OR")
}

// Scenario 2 (spec §8): AND, both must trip.
func TestEndToEndANDBothMustTrip(t *testing.T) {
	run := func(memValue float64) bool {
		fc := clock.NewFake(time.Unix(0, 0).UTC())
		eng := New(WithClock(fc))
		src := make(chan streamx.Result[sample.Sample], 16)
		eng.Start(src)
		defer eng.Close()

		rule, err := eng.Build(context.Background(), "avg(cpu, 3s) > 70 && avg(mem, 3s) > 80")
		require.NoError(t, err)
		defer rule.Close()

		pushAndClose(src, fc,
			sample.New("cpu", 85, at(t, 0)), sample.New("cpu", 85, at(t, 1)), sample.New("cpu", 85, at(t, 2)),
			sample.New("mem", memValue, at(t, 0)), sample.New("mem", memValue, at(t, 1)), sample.New("mem", memValue, at(t, 2)),
		)

		res := <-rule.C()
		v, err := res.Get()
		require.NoError(t, err)
		return v.Value
	}

	assert.True(t, run(90), "both cpu and mem trip")
	assert.False(t, run(60), "mem never trips")
}

// Scenario 4 (spec §8): variable threshold.
func TestEndToEndVariableThreshold(t *testing.T) {
	resolver, err := arith.NewStaticResolver(map[string]interface{}{"k": 40})
	require.NoError(t, err)

	eng := New(WithResolver(resolver))
	src := make(chan streamx.Result[sample.Sample], 4)
	eng.Start(src)
	defer eng.Close()

	rule, err := eng.Build(context.Background(), "cpu > k * 2")
	require.NoError(t, err)
	defer rule.Close()

	src <- streamx.Value(sample.New("cpu", 81, at(t, 0)))
	res := <-rule.C()
	v, err := res.Get()
	require.NoError(t, err)
	assert.True(t, v.Value)

	src <- streamx.Value(sample.New("cpu", 79, at(t, 1)))
	res = <-rule.C()
	v, err = res.Get()
	require.NoError(t, err)
	assert.False(t, v.Value)
	close(src)
}

// Scenario 4 (spec §8), undefined-variable branch: the resolver never
// has "k", so the first sample terminates the stream with
// UnresolvedVariableError.
func TestEndToEndUndefinedVariableTerminatesStream(t *testing.T) {
	eng := New() // default resolver is arith.EmptyResolver
	src := make(chan streamx.Result[sample.Sample], 4)
	eng.Start(src)
	defer eng.Close()

	rule, err := eng.Build(context.Background(), "cpu > k * 2")
	require.NoError(t, err)
	defer rule.Close()

	src <- streamx.Value(sample.New("cpu", 81, at(t, 0)))
	res := <-rule.C()
	require.True(t, res.IsError())
	_, err = res.Get()
	var target *errs.UnresolvedVariableError
	assert.ErrorAs(t, err, &target)
	close(src)
}

// Testable property 5 (spec §8): ExtractMetrics(text) equals the set of
// metric names the engine subscribes to.
func TestExtractMetricsMatchesBuildSubscriptions(t *testing.T) {
	text := "avg(cpu, 1m) > 70 || avg(mem, 1m) > 80"
	metrics, err := ExtractMetrics(text)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"cpu": {}, "mem": {}}, metrics)

	eng := New()
	src := make(chan streamx.Result[sample.Sample])
	eng.Start(src)
	defer eng.Close()
	rule, err := eng.Build(context.Background(), text)
	require.NoError(t, err)
	defer rule.Close()
	close(src)

	assert.Equal(t, metrics, rule.Metrics())
}

// Scenario 6 (spec §8): grammar edge, complexity report shape.
func TestAnalyzeComplexityGrammarEdge(t *testing.T) {
	text := "(avg(cpu, 30s) > 80 && avg(memory, 1m) > 85) || (max(disk, 5m) > 95 && min(network, 10s) < 5)"
	report, err := AnalyzeComplexity(text)
	require.NoError(t, err)
	assert.Equal(t, 4, report.AggregationCount)
	assert.GreaterOrEqual(t, report.MaxDepth, 4)
	assert.False(t, report.IsHighComplexity())
}

func TestValidateReportsUnknownMetric(t *testing.T) {
	result := Validate("avg(gpu, 1m) > 70", ast.NewStaticSet("cpu", "mem"), nil)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	var target *errs.InvalidExpressionError
	assert.ErrorAs(t, result.Errors[0], &target)
}

func TestValidateAcceptsValidText(t *testing.T) {
	result := Validate("avg(cpu, 1m) > 70", nil, nil)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestBuildRejectsInvalidExpressionSynchronously(t *testing.T) {
	eng := New(WithKnownMetrics("cpu"))
	_, err := eng.Build(context.Background(), "avg(gpu, 1m) > 70")
	require.Error(t, err)
	var target *errs.InvalidExpressionError
	assert.ErrorAs(t, err, &target)
}

func TestBuildRejectsSyntaxErrorSynchronously(t *testing.T) {
	eng := New()
	_, err := eng.Build(context.Background(), "cpu >")
	require.Error(t, err)
	var target *errs.SyntaxError
	assert.ErrorAs(t, err, &target)
}

// Testable property 6 (spec §8), observed from outside: two rules
// referencing the same metric through the Engine's one Router both
// receive the single sample pushed for it.
func TestSharedMetricAcrossTwoRules(t *testing.T) {
	eng := New()
	src := make(chan streamx.Result[sample.Sample], 4)
	eng.Start(src)
	defer eng.Close()

	ruleA, err := eng.Build(context.Background(), "cpu > 50")
	require.NoError(t, err)
	defer ruleA.Close()
	ruleB, err := eng.Build(context.Background(), "cpu > 90")
	require.NoError(t, err)
	defer ruleB.Close()

	src <- streamx.Value(sample.New("cpu", 95, at(t, 0)))
	close(src)

	va, err := (<-ruleA.C()).Get()
	require.NoError(t, err)
	vb, err := (<-ruleB.C()).Get()
	require.NoError(t, err)
	assert.True(t, va.Value)
	assert.True(t, vb.Value)
}
