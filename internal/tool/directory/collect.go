package directory

import (
	"errors"
	"iter"
)

// Listing is a bounded, materialised walk.
type Listing struct {
	Paths     []string
	Truncated bool
	Err       error // joined walk errors; Paths is still usable
}

// Collect ranges over seq until limit paths are gathered.
func Collect(seq iter.Seq2[string, error], limit int) Listing {
	var l Listing
	var errs []error
	for p, err := range seq {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(l.Paths) == limit {
			l.Truncated = true
			break
		}
		l.Paths = append(l.Paths, p)
	}
	l.Err = errors.Join(errs...)
	return l
}
