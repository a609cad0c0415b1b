// Package finance prices rental bookings and rolls bookings and expenses up into
// financial summaries.
//
// Everything here is pure and works on request-scoped snapshots. Calendar
// semantics (day boundaries, month buckets, "today") follow the location
// carried by the reference time passed in as now, which callers set to the
// business timezone.
//
// Bad data never fails a computation: a missing car, an unparseable amount or
// a missing date contributes zero and the record is still counted where that
// makes sense.
package finance
