package analytics

import (
	"context"
	"sort"
)

// GamesByPopularity returns every game with stats, most popular first.
// Ties keep alphabetical order. An empty store yields an empty slice.
func (t *Tracker) GamesByPopularity(ctx context.Context) ([]string, error) {
	all, err := t.AllStats(ctx)
	if err != nil {
		return nil, err
	}
	return byPopularity(all), nil
}

// RankCatalog orders a listing: catalog games with stats come first by
// popularity, the rest follow in catalog order. Ids with stats that are not
// in the catalog are left out.
func (t *Tracker) RankCatalog(ctx context.Context, catalog []string) ([]string, error) {
	all, err := t.AllStats(ctx)
	if err != nil {
		return nil, err
	}

	known := make([]string, 0, len(catalog))
	unknown := make([]string, 0, len(catalog))
	for _, id := range catalog {
		if _, ok := all[id]; ok {
			known = append(known, id)
		} else {
			unknown = append(unknown, id)
		}
	}
	sort.SliceStable(known, func(i, j int) bool {
		return all[known[i]].PopularityScore > all[known[j]].PopularityScore
	})
	return append(known, unknown...), nil
}

// TodayPopular returns games visited today, most visits first, ties broken by
// popularity. A non-positive limit returns all of them.
func (t *Tracker) TodayPopular(ctx context.Context, limit int) ([]string, error) {
	all, err := t.AllStats(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, id := range byPopularity(all) {
		if all[id].VisitCountToday > 0 {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return all[ids[i]].VisitCountToday > all[ids[j]].VisitCountToday
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
