package rtlog

// Functions for formatting values in log and report messages.

import (
	"strconv"
	"time"
)

// SiMultiple scales n down to Kilo, Mega, Giga, ..., or Yotta, rounding
// half up to a whole number of that unit, and appends the unit letter. multipleOf can be 1000 or 1024 (or anything
// >= 256). maxUnit prevents losing too much precision by using too big a
// unit.
func SiMultiple(n, multipleOf uint64, maxUnit byte) string {
	var steps, rem uint64
	units := " KMGTPEZY"
	for n >= multipleOf && units[steps] != maxUnit {
		rem = n % multipleOf
		n /= multipleOf
		steps++
	}
	if rem%multipleOf >= multipleOf/2 {
		n++
	}
	s := strconv.FormatUint(n, 10)
	if steps > 0 {
		s += units[steps : steps+1]
	}
	return s
}

// RoundDuration truncates d to a multiple of to, for less noisy printing.
func RoundDuration(d, to time.Duration) string {
	d = d - (d % to)
	return d.String()
}
