// Package locus implements the read-only locus query core: turning a
// validated request (filters, sort, pagination, sideload flags) plus the
// caller's role into a deterministic SQL query plan, executing it, and
// assembling the paginated response envelope.
//
// The plan builder is pure: it performs no I/O, never mutates its
// inputs, and always emits a fully-specified ordering (requested sort
// plus a stable id tie-break) so pagination is reproducible. Role
// restriction for the limited tier is a mandatory predicate added by the
// builder itself; no combination of input filters can remove it.
package locus
