package xmlavro

// Diag collects the non-fatal issues raised during a conversion
// (unschematized fields, unsupported coercions, null fallbacks). Fatal
// conditions are returned as errors, never reported here.
//
// A nil *Diag is valid and discards everything.
type Diag struct {
	issues Issues
}

// Report records a non-fatal issue.
func (d *Diag) Report(it Issue) {
	if d == nil {
		return
	}
	d.issues = append(d.issues, it)
}

// Issues returns everything reported so far, in report order.
func (d *Diag) Issues() Issues {
	if d == nil {
		return nil
	}
	return d.issues
}

// Count returns the number of reported issues carrying the given code.
func (d *Diag) Count(code string) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, it := range d.issues {
		if it.Code == code {
			n++
		}
	}
	return n
}
