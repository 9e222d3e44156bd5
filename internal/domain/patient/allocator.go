package patient

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/docstore"
)

// Patient ids are date-scoped serials: <YYYYMMDD>/<3-digit serial>,
// where the date component is the normalized catheter insertion date
// and the serial is the smallest unused integer >= 1 for that date at
// creation time. Serials are never re-compacted after deletions.

// NormalizeDate converts a catheter insertion date to the 8-digit form
// used in ids. Accepts YYYY-MM-DD (month and day are zero-padded) or
// an already-normalized YYYYMMDD value, which passes through.
func NormalizeDate(date string) string {
	date = strings.TrimSpace(date)
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	m, _ := strconv.Atoi(parts[1])
	d, _ := strconv.Atoi(parts[2])
	return fmt.Sprintf("%s%02d%02d", parts[0], m, d)
}

// AllocateID composes the next free id for the given insertion date:
// one past the highest serial already assigned for that date. The
// trailing existence check is unreachable under single-writer access
// and reports ErrAllocationConflict instead of overwriting.
func AllocateID(catheterInsertionDate string, existing []*record.Patient) (string, error) {
	date := NormalizeDate(catheterInsertionDate)
	max := 0
	for _, p := range existing {
		d, serial, ok := splitID(p.ID)
		if ok && d == date && serial > max {
			max = serial
		}
	}
	id := fmt.Sprintf("%s/%03d", date, max+1)
	for _, p := range existing {
		if p.ID == id {
			return "", docstore.ErrAllocationConflict
		}
	}
	return id, nil
}

// DeduplicateIDs repairs duplicated patient ids in place. The
// first-seen occupant of a duplicated id keeps it; every later
// occurrence is reassigned by probing serials for its own insertion
// date from 1 upward until an id unused by any patient is found.
// Running it twice produces no further changes.
func DeduplicateIDs(patients []*record.Patient) int {
	taken := make(map[string]bool, len(patients))
	for _, p := range patients {
		taken[p.ID] = true
	}
	seen := make(map[string]bool, len(patients))
	fixed := 0
	for _, p := range patients {
		if !seen[p.ID] {
			seen[p.ID] = true
			continue
		}
		date := NormalizeDate(p.CatheterInsertionDate)
		for serial := 1; ; serial++ {
			id := fmt.Sprintf("%s/%03d", date, serial)
			if taken[id] {
				continue
			}
			p.ID = id
			taken[id] = true
			seen[id] = true
			fixed++
			break
		}
	}
	return fixed
}

func splitID(id string) (date string, serial int, ok bool) {
	date, s, found := strings.Cut(id, "/")
	if !found {
		return "", 0, false
	}
	serial, err := strconv.Atoi(s)
	if err != nil {
		return "", 0, false
	}
	return date, serial, true
}
