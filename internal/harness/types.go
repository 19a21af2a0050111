package harness

// Mismatch is a slot whose resolved value differs from the expected one.
type Mismatch struct {
	Index int     `json:"index"`
	Input float64 `json:"-"`
	Want  float64 `json:"-"`
	Got   float64 `json:"-"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if the buffer matches and every assertion holds.
	Pass bool `json:"pass"`

	// Values is the resolved buffer.
	Values []float64 `json:"-"`

	// ClaimedBy is the sorted index of the selection that resolved each
	// slot, or -1.
	ClaimedBy []int `json:"claimed_by"`

	// Order is the String form of each selection in fold order.
	Order []string `json:"order"`

	// Mismatches lists the slots that differ from the scenario's expect.
	Mismatches []Mismatch `json:"mismatches,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
