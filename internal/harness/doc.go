// Package harness provides conformance testing for selection sets.
//
// The harness loads YAML scenarios, coalesces the scenario's input values
// through its fitted selections, and checks the resolved buffer against
// the expected one and any additional assertions.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	values: [1, 3, 10, .nan, 7]
//	selections:
//	  - {type: interval, values: [0, 5], bounds: "[)", order: 0, mono: 0}
//	  - {type: override, override: 10, order: 1, fill: -1}
//	  - {type: missing, order: 2, fill: 0}
//	fallback: passthrough
//	workers: 4
//	expect: [1, 3, -1, 0, .nan]
//	assertions:
//	  - type: claimed_by
//	    claims: [0, 0, 1, 2, -1]
//	  - type: unresolved
//	    count: 1
//
// Selection records use the same format as selection documents (see
// package compiler), including the optional "fill" field. A record without
// a fill, or with fill "passthrough", passes the input value through.
//
// fallback appends an Identity selection with the given fill
// ("passthrough" or a number). It sorts after every other selection and so
// only claims slots nothing else resolved.
//
// YAML's .nan, .inf and -.inf literals may appear in values and expect.
// A NaN in expect means the slot must stay unresolved.
//
// # Assertion Types
//
//   - claimed_by: the sorted index of the selection that resolved each slot (-1 if none)
//   - order: the String form of each selection after sorting
//   - unresolved: the number of slots no selection resolved
//   - idempotent: re-applying the sorted selections leaves the result unchanged
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/end_to_end.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
