// Package join matches a sparse, distance-keyed defect table against a dense
// stream of sensor value rows and annotates each value row with the defect it
// falls next to.
//
// # Reading Guide
//
//   - defect.go: DefectEntry and LoadDefects (parse, sort ascending by distance)
//   - index.go: DefectIndex, the first-match-in-window lookup
//   - engine.go: Joiner.Run, the single streaming pass over value rows
//   - code.go: the label → code table and the Annotation cells it produces
//
// # Interfaces
//
// The engine reads rows through RowReader and writes through RowWriter; CSV and
// Arrow implementations live in join/table, file and S3 openers in join/source.
// Per-row match decisions are pushed to RowObserver implementations
// (join/trace for summaries, join/metrics for Prometheus counters).
package join
