// Package headless steps visualizers without a display: fixed-length runs
// with metrics, seed ensembles and JSON export of the results.
package headless
