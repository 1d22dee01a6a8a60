package domain

// TruncationReason marks why a subtree was cut during projection.
type TruncationReason string

const (
	TruncatedDepth    TruncationReason = "depth"
	TruncatedMaxNodes TruncationReason = "max_nodes"
)

// DomNode is one node of the projected document tree. Element nodes carry
// Tag (lowercased); text nodes carry Text. Nodes cut by a budget carry a
// Truncated marker instead of their subtree.
type DomNode struct {
	Tag       string           `json:"tag,omitempty"`
	Text      string           `json:"text,omitempty"`
	ID        string           `json:"id,omitempty"`
	Class     string           `json:"class,omitempty"`
	Children  []*DomNode       `json:"children,omitempty"`
	Truncated TruncationReason `json:"truncated,omitempty"`
	// SkippedSiblings records how many untraversed siblings remained when
	// the node budget ran out, so large documents are reported rather than
	// silently clipped.
	SkippedSiblings int `json:"skipped_siblings,omitempty"`
}

// TreeStats lets callers distinguish a small document from a truncated
// large one.
type TreeStats struct {
	TotalNodes int  `json:"total_nodes"`
	MaxDepth   int  `json:"max_depth"`
	MaxNodes   int  `json:"max_nodes"`
	Truncated  bool `json:"truncated"`
}

// TreeResult is the full projection output: the tree plus its stats block.
type TreeResult struct {
	Root  *DomNode  `json:"tree"`
	Stats TreeStats `json:"stats"`
}
