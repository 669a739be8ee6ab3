// Package conformance runs declarative, YAML-defined scenarios against
// the itc package and compares their outcome to golden fixtures.
//
// A scenario names a set of participants, drives them through a
// sequence of kernel operations (seed, fork, fork4, event, send,
// receive, join), and asserts causal relationships between the resulting
// stamps. Scenarios double as executable documentation for the worked
// examples in the textual specification they were transcribed from.
package conformance
