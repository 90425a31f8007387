// Package wellbeing derives dashboard values from materialised health
// records: normalised rating scores, per-day averages, a dense trend series,
// activity counts and a unified list of recent entries.
//
// Every function is a pure computation over the collections it receives.
// Malformed input (missing or unparseable timestamps, unknown rating values)
// is excluded from the result instead of being reported as an error.
package wellbeing
