// Package surface provides concrete parametric surfaces: a catalogue of
// named analytic surfaces and user-defined formula surfaces compiled from
// textual coordinate expressions.
package surface
