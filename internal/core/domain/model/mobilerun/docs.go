// Package mobilerun tracks one deployment of a mobile production unit at a
// customer site: the calibration record that gates the start, the run window
// and the ordered log of cleaning sequences performed on the unit.
//
// At most one cleaning sequence may be open at a time. The rule is a list
// invariant checked on every snapshot, not a runtime lock: an open sequence
// is a business activity that can last for hours.
//
// The changeover rules live here as well: a medicated to non-medicated
// changeover always needs a WetClean, anything else needs a Flush, and a unit
// that has not finished any cleaning within 24 hours always needs cleaning.
package mobilerun
