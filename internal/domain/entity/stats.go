package entity

// ItemStats are the per-item engagement counters, computed by the database
// from item_views and favorites. Never stored locally.
type ItemStats struct {
	ViewCount     int64
	FavoriteCount int64
	UniqueViewers int64
}

// UserStats aggregates a user's listings and the engagement they received,
// computed by the database in a single query.
type UserStats struct {
	TotalItems     int64
	AvailableItems int64
	ClaimedItems   int64
	TotalViews     int64
	TotalFavorites int64
}

// DashboardStats are the dashboard counters derived from an owner's fetched
// item collection. They are always recomputed from the collection after a
// mutation, never adjusted incrementally, so they cannot drift from the rows
// actually fetched.
type DashboardStats struct {
	TotalItems     int
	AvailableItems int
	ClaimedItems   int
}

// ComputeDashboardStats derives the dashboard counters from a fetched item
// collection. ClaimedItems is total minus available by construction.
func ComputeDashboardStats(items []*Item) DashboardStats {
	stats := DashboardStats{TotalItems: len(items)}
	for _, item := range items {
		if item.IsAvailable {
			stats.AvailableItems++
		}
	}
	stats.ClaimedItems = stats.TotalItems - stats.AvailableItems

	return stats
}
