// Package geo provides geographic primitives: great-circle distance,
// coordinate types, and bounding boxes.
//
// All distances are in kilometers. Coordinates are WGS84 degrees.
// Functions are pure and perform no range validation; out-of-range
// inputs produce numerically valid but meaningless results.
package geo
