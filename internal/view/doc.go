// Package view derives the visible event list from the full event set and
// the active filter configuration.
//
// Derivation is a pure transformation: the reference instant is an explicit
// parameter, inputs are never mutated, and re-running on unchanged inputs
// yields an identical ordered sequence. Both the list panel and the map
// render from the same derived slice.
package view
