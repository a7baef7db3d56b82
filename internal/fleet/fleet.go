// Package fleet computes values derived from stored ship and visit records.
package fleet

import (
	"strconv"
	"time"

	"vessels/models"
)

// ShipAge returns now's year minus the year the ship was built. A nil or
// blank year yields nil. A year in the future yields a negative age.
func ShipAge(yearBuilt *string, now time.Time) *int {
	if yearBuilt == nil || *yearBuilt == "" {
		return nil
	}
	year, err := strconv.Atoi(*yearBuilt)
	if err != nil {
		// only reachable for a record that already fails validation
		return nil
	}
	age := now.Year() - year
	return &age
}

// View attaches the age of s as of now.
func View(s models.Ship, now time.Time) models.ShipView {
	return models.ShipView{Ship: s, Age: ShipAge(s.YearBuilt, now)}
}

// Views is View over a slice. The result is never nil.
func Views(ships []models.Ship, now time.Time) []models.ShipView {
	out := make([]models.ShipView, 0, len(ships))
	for _, s := range ships {
		out = append(out, View(s, now))
	}
	return out
}

// DockedAt reports whether the visit window contains t. Both bounds are
// inclusive and a visit missing either bound never matches.
func DockedAt(v models.Visit, t time.Time) bool {
	if v.EntryTime == nil || v.ExitTime == nil {
		return false
	}
	return !v.EntryTime.After(t) && !v.ExitTime.Before(t)
}

// DockedShipIDs returns the distinct ship ids with a visit at harbourID whose
// window contains t, in first-seen order.
func DockedShipIDs(visits []models.Visit, harbourID int64, t time.Time) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, v := range visits {
		if v.HarbourID != harbourID || !DockedAt(v, t) {
			continue
		}
		if _, ok := seen[v.ShipID]; ok {
			continue
		}
		seen[v.ShipID] = struct{}{}
		ids = append(ids, v.ShipID)
	}
	return ids
}
