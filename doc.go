// Package fundamental resolves financial metrics, such as a payment turnover
// ratio, across several reporting periods and at a point in time.
//
// The core abstractions are:
//   - Period: the closed registry of reporting windows ("1Y" / "OneYear").
//   - Definition: static, shared metadata of a metric: storage path stem,
//     declared periods and default period. Metrics are data, see Builtin and
//     DecodeCatalog.
//   - Scope: the evaluation date and instrument of a query.
//   - Field: a Definition bound to a Scope, resolved through a Store. It
//     exposes the default value, a presence check, per-period lookups and
//     the map of all present periods.
//   - Store: the point-in-time source of values. Missing data is the Absent
//     Value, never an error; errors mean the store could not answer.
//
// A Value is an explicit optional: a present zero and "no data" can never be
// confused.
//
// Concrete stores live in sub-packages (jsonl, postgres, redis, remote,
// s3archive); MemoryStore is the in-process one.
package fundamental
