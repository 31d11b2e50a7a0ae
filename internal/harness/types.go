package harness

// Trace event types.
const (
	EventAdd   = "add"
	EventSolve = "solve"
)

// TraceEvent records one solver call and its outcome.
type TraceEvent struct {
	Type string `json:"type"` // "add" or "solve"
	Seq  int64  `json:"seq"`

	// add
	Name   string `json:"name,omitempty"`
	Weight int    `json:"weight,omitempty"`
	Value  int    `json:"value,omitempty"`

	// solve
	Capacity    int      `json:"capacity,omitempty"`
	Payloads    []string `json:"payloads,omitempty"`
	TotalValue  int      `json:"total_value,omitempty"`
	TotalWeight int      `json:"total_weight,omitempty"`

	// Error is the solver error code, empty on success.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and reference check held.
	Pass bool `json:"pass"`

	// Trace contains every add and solve in call order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failed checks. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failed check and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
