// Package aggregates owns transaction boundaries for multi-repository writes.
//
// Services run their check-then-write sequences through ExecuteWrite so the
// existence, ownership and uniqueness reads share one unit of work with the
// write that depends on them.
package aggregates
