// Package dataset reads review records from the backing CSV dataset.
//
// The dataset is read-only input. Rows with malformed timestamps or ratings
// are dropped during parsing (an explicit filter, counted in metrics), never
// repaired. The source can read a local file or fetch over HTTP; remote
// fetches go through a circuit breaker so a flapping upstream fails fast.
package dataset
