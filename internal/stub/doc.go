// Package stub provides an in-memory implementation of the events backend's
// REST interface boundary.
//
// It exists so the client contract (admin-key discrimination, suggestion
// approval propagating onto events) is executable in tests and during local
// development via cmd/ridemap-stub. It is not the production backend: state
// lives in memory and vanishes on exit.
package stub
