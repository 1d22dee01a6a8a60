package domain

import (
	"fmt"
	"strings"
)

// Traversal budget defaults and hard limits. The defaults match what the
// bridge applies when a caller omits the parameter; the limits bound what
// a caller may ask for.
const (
	DefaultMaxDepth = 10
	DefaultMaxNodes = 500
	MaxDepthLimit   = 50
	MaxNodesLimit   = 5000

	// MaxTextLength bounds emitted text-node content; longer text is
	// truncated with a trailing ellipsis marker.
	MaxTextLength = 120
)

// RequestKind identifies a typed evaluation command.
type RequestKind string

const (
	KindEval     RequestKind = "eval"
	KindQuery    RequestKind = "query"
	KindTree     RequestKind = "tree"
	KindInspect  RequestKind = "inspect"
	KindClasses  RequestKind = "validate_classes"
	KindDiagnose RequestKind = "diagnose"
)

// Request is one of the closed set of typed evaluation commands the bridge
// accepts. Only EvalRequest carries caller-supplied script text verbatim;
// every other variant interpolates parameters as data.
type Request interface {
	Kind() RequestKind
	// Validate rejects malformed or out-of-range parameters. It runs
	// before a command is created, so invalid input never reaches the
	// evaluation loop.
	Validate() error
}

// EvalRequest executes raw script text via the host's script evaluator.
// Callers of this path accept the associated risk.
type EvalRequest struct {
	Script string `json:"script"`
}

func (EvalRequest) Kind() RequestKind { return KindEval }

func (r EvalRequest) Validate() error {
	if strings.TrimSpace(r.Script) == "" {
		return fmt.Errorf("%w: script must not be empty", ErrInvalidParams)
	}
	return nil
}

// QueryMode selects what a query extracts from the matched element.
type QueryMode string

const (
	QueryText  QueryMode = "text"
	QueryHTML  QueryMode = "html"
	QueryValue QueryMode = "value"
	QueryAttr  QueryMode = "attr"
)

// ParseQueryMode validates a mode string, defaulting empty to text.
func ParseQueryMode(s string) (QueryMode, error) {
	switch QueryMode(s) {
	case "":
		return QueryText, nil
	case QueryText, QueryHTML, QueryValue, QueryAttr:
		return QueryMode(s), nil
	default:
		return "", fmt.Errorf("%w: unknown query mode %q", ErrInvalidParams, s)
	}
}

// QueryRequest extracts a single value from the first selector match.
type QueryRequest struct {
	Selector string    `json:"selector"`
	Mode     QueryMode `json:"mode"`
	Attr     string    `json:"attr,omitempty"`
}

func (QueryRequest) Kind() RequestKind { return KindQuery }

func (r QueryRequest) Validate() error {
	if strings.TrimSpace(r.Selector) == "" {
		return fmt.Errorf("%w: selector must not be empty", ErrInvalidParams)
	}
	if _, err := ParseQueryMode(string(r.Mode)); err != nil {
		return err
	}
	if r.Mode == QueryAttr && strings.TrimSpace(r.Attr) == "" {
		return fmt.Errorf("%w: attr is required for mode %q", ErrInvalidParams, QueryAttr)
	}
	return nil
}

// TreeRequest projects the document (or the subtree rooted at Selector)
// into a DomNode tree under node and depth budgets. Zero budgets select
// the defaults.
type TreeRequest struct {
	Selector string `json:"selector,omitempty"`
	MaxDepth int    `json:"max_depth,omitempty"`
	MaxNodes int    `json:"max_nodes,omitempty"`
}

func (TreeRequest) Kind() RequestKind { return KindTree }

func (r TreeRequest) Validate() error {
	if r.MaxDepth < 0 || r.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("%w: max_depth must be in [1, %d]", ErrInvalidParams, MaxDepthLimit)
	}
	if r.MaxNodes < 0 || r.MaxNodes > MaxNodesLimit {
		return fmt.Errorf("%w: max_nodes must be in [1, %d]", ErrInvalidParams, MaxNodesLimit)
	}
	return nil
}

// Depth returns the effective depth budget.
func (r TreeRequest) Depth() int {
	if r.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return r.MaxDepth
}

// Nodes returns the effective node budget.
func (r TreeRequest) Nodes() int {
	if r.MaxNodes == 0 {
		return DefaultMaxNodes
	}
	return r.MaxNodes
}

// InspectRequest analyzes visibility of the first selector match.
type InspectRequest struct {
	Selector string `json:"selector"`
}

func (InspectRequest) Kind() RequestKind { return KindInspect }

func (r InspectRequest) Validate() error {
	if strings.TrimSpace(r.Selector) == "" {
		return fmt.Errorf("%w: selector must not be empty", ErrInvalidParams)
	}
	return nil
}

// ClassesRequest checks style-rule availability for the named classes.
type ClassesRequest struct {
	Classes []string `json:"classes"`
}

func (ClassesRequest) Kind() RequestKind { return KindClasses }

func (r ClassesRequest) Validate() error {
	if len(r.Classes) == 0 {
		return fmt.Errorf("%w: classes must not be empty", ErrInvalidParams)
	}
	for _, c := range r.Classes {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w: class names must not be blank", ErrInvalidParams)
		}
	}
	return nil
}

// DiagnoseRequest runs the aggregate visibility/health scan.
type DiagnoseRequest struct{}

func (DiagnoseRequest) Kind() RequestKind { return KindDiagnose }

func (DiagnoseRequest) Validate() error { return nil }
