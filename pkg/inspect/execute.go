package inspect

import (
	"context"
	"encoding/json"

	"github.com/glimpse-dev/glimpse/pkg/domain"
	"github.com/glimpse-dev/glimpse/pkg/ports"
)

// Execute dispatches one typed request against the live document. It is
// the single entry point the evaluation loop calls; it never panics and
// always produces a resolvable Response.
func Execute(ctx context.Context, doc ports.Document, eval ports.ScriptEvaluator, req domain.Request) domain.Response {
	if req == nil {
		return domain.Failure(domain.NewError(domain.KindInternalError, "nil request"))
	}
	if err := req.Validate(); err != nil {
		return domain.Failure(domain.ErrorFrom(err))
	}

	switch r := req.(type) {
	case domain.EvalRequest:
		if eval == nil {
			return domain.Failure(domain.NewError(domain.KindEvaluationError,
				"host does not support raw script evaluation"))
		}
		out, err := eval.Eval(ctx, r.Script)
		if err != nil {
			return domain.Failure(domain.NewError(domain.KindEvaluationError, "%v", err))
		}
		return domain.Success(out)

	case domain.QueryRequest:
		value, err := Query(doc, r)
		if err != nil {
			return domain.Failure(domain.ErrorFrom(err))
		}
		return marshal(value)

	case domain.TreeRequest:
		result, err := Tree(doc, r)
		if err != nil {
			return domain.Failure(domain.ErrorFrom(err))
		}
		return marshal(result)

	case domain.InspectRequest:
		report, err := InspectElement(doc, r)
		if err != nil {
			return domain.Failure(domain.ErrorFrom(err))
		}
		return marshal(report)

	case domain.ClassesRequest:
		report, err := ValidateClasses(doc, r)
		if err != nil {
			return domain.Failure(domain.ErrorFrom(err))
		}
		return marshal(report)

	case domain.DiagnoseRequest:
		result, err := Diagnose(doc)
		if err != nil {
			return domain.Failure(domain.ErrorFrom(err))
		}
		return marshal(result)
	}

	return domain.Failure(domain.NewError(domain.KindInternalError,
		"unknown request kind %q", req.Kind()))
}

func marshal(v any) domain.Response {
	raw, err := json.Marshal(v)
	if err != nil {
		return domain.Failure(domain.NewError(domain.KindInternalError, "encode result: %v", err))
	}
	return domain.Success(string(raw))
}
