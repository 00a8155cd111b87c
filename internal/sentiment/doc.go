// Package sentiment scores review text.
//
// Two independent methods produce one hybrid score: a VADER analyzer and a
// small lexicon polarity scorer. The hybrid score is their mean. Scoring a
// single review never fails the pipeline; a method failure degrades that
// review to a neutral zero and marks the result degraded.
package sentiment
