// Package query turns sparse listing filters into storage predicates and
// windows results into pages.
package query

import "time"

type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchContains
)

type Match struct {
	Value string
	Mode  MatchMode
}

// Filters is the set of optional listing criteria. A zero field has no
// effect on the predicate.
type Filters struct {
	Location   string
	JobType    string
	PayRateMin *float64
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Predicate is the storage-facing form of a filter set. Every predicate
// implicitly requires an unclaimed shift at an active workplace.
type Predicate struct {
	StartFrom  time.Time
	StartUntil *time.Time
	Location   *Match
	JobType    *Match
	PayRateMin *float64

	// ExcludeLocation and ExcludeJobType drop one value of the target axis
	// from a distinct scan.
	ExcludeLocation string
	ExcludeJobType  string
}
