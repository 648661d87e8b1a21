package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntaxErrorMessage(t *testing.T) {
	err := &SyntaxError{Message: "unexpected token", Line: 1, Column: 5, Token: "&", Expected: []string{"&&", "OR"}}
	msg := err.Error()
	assert.Contains(t, msg, "line 1, column 5")
	assert.Contains(t, msg, `found "&"`)
	assert.Contains(t, msg, "&&")
}

func TestUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &UpstreamError{Cause: cause}
	assert.True(t, errors.Is(err, cause))
}

func TestInvalidExpressionErrorIncludesNode(t *testing.T) {
	err := &InvalidExpressionError{Rule: "r1", Node: "cond-1", Message: "unknown metric"}
	assert.Contains(t, err.Error(), "cond-1")
	assert.Contains(t, err.Error(), "r1")
}
