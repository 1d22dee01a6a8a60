package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glimpse-dev/glimpse/pkg/domain"
)

type stubEvaluator struct {
	result string
	err    error
	script string
}

func (s *stubEvaluator) Eval(ctx context.Context, script string) (string, error) {
	s.script = script
	return s.result, s.err
}

func TestExecuteDispatch(t *testing.T) {
	doc := parseDoc(t, `<body><h1 id="title">hi</h1></body>`)
	ctx := context.Background()

	t.Run("query", func(t *testing.T) {
		res := Execute(ctx, doc, nil, domain.QueryRequest{Selector: "#title"})
		require.True(t, res.OK)

		var text string
		require.NoError(t, json.Unmarshal([]byte(res.Result), &text))
		assert.Equal(t, "hi", text)
	})

	t.Run("tree", func(t *testing.T) {
		res := Execute(ctx, doc, nil, domain.TreeRequest{})
		require.True(t, res.OK)

		var tree domain.TreeResult
		require.NoError(t, json.Unmarshal([]byte(res.Result), &tree))
		assert.Equal(t, "body", tree.Root.Tag)
	})

	t.Run("diagnose", func(t *testing.T) {
		res := Execute(ctx, doc, nil, domain.DiagnoseRequest{})
		require.True(t, res.OK)
	})
}

func TestExecuteEval(t *testing.T) {
	doc := parseDoc(t, `<body></body>`)
	eval := &stubEvaluator{result: "42"}

	res := Execute(context.Background(), doc, eval, domain.EvalRequest{Script: "6 * 7"})

	require.True(t, res.OK)
	assert.Equal(t, "42", res.Result)
	assert.Equal(t, "6 * 7", eval.script)
}

func TestExecuteEvalWithoutEvaluator(t *testing.T) {
	doc := parseDoc(t, `<body></body>`)

	res := Execute(context.Background(), doc, nil, domain.EvalRequest{Script: "1"})

	require.False(t, res.OK)
	assert.Equal(t, domain.KindEvaluationError, res.Err.Kind)
}

func TestExecuteEvalFailure(t *testing.T) {
	doc := parseDoc(t, `<body></body>`)
	eval := &stubEvaluator{err: errors.New("ReferenceError: x is not defined")}

	res := Execute(context.Background(), doc, eval, domain.EvalRequest{Script: "x"})

	require.False(t, res.OK)
	assert.Equal(t, domain.KindEvaluationError, res.Err.Kind)
	assert.Contains(t, res.Err.Detail, "ReferenceError")
}

func TestExecuteValidatesFirst(t *testing.T) {
	doc := parseDoc(t, `<body></body>`)

	res := Execute(context.Background(), doc, nil, domain.QueryRequest{})

	require.False(t, res.OK)
	assert.Equal(t, domain.KindInvalidParams, res.Err.Kind)
}

func TestExecuteNilRequest(t *testing.T) {
	doc := parseDoc(t, `<body></body>`)

	res := Execute(context.Background(), doc, nil, nil)

	require.False(t, res.OK)
	assert.Equal(t, domain.KindInternalError, res.Err.Kind)
}
