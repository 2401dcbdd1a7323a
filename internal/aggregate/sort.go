package aggregate

import "sort"

// sortEventViews orders the final event list by start time, breaking ties by
// event id so output is stable across runs.
func sortEventViews(views []EventView) {
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].Event.Start.Equal(views[j].Event.Start) {
			return views[i].Event.Start.Before(views[j].Event.Start)
		}
		return views[i].Event.ID.String() < views[j].Event.ID.String()
	})
}
