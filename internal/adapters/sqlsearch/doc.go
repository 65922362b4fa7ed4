// Package sqlsearch implements the dynamic member/team search on top of the goqu query DSL.
//
// A search condition is turned into optional predicates (predicate.go), bound into a fixed
// member LEFT JOIN team statement (query.go) and executed against a Session either as one
// windowed query that also yields the total, or as a data query plus a COUNT query (executor.go).
// Searcher (searcher.go) is the facade used by the storage adapters.
package sqlsearch
