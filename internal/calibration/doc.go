// Package calibration times the π computation for several worker counts,
// keeps the fastest in a JSON profile, and reads that profile back on later
// runs that leave the worker count unset.
package calibration
