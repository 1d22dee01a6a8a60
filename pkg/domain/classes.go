package domain

// ClassStatus is the per-class availability verdict. Rule holds a one-line
// excerpt of the first matching style rule when the class was found.
type ClassStatus struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Rule  string `json:"rule,omitempty"`
}

// ClassReport aggregates a validate-classes run.
type ClassReport struct {
	Total          int           `json:"total"`
	Found          int           `json:"found"`
	Missing        int           `json:"missing"`
	Classes        []ClassStatus `json:"classes"`
	MissingClasses []string      `json:"missingClasses"`
}
