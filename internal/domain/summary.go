package domain

import "slices"

type CategorySummary struct {
	CategoryID      int64
	Name            string
	Color           string
	DurationMinutes int
}

// SummarizeByCategory totals activity durations per category, longest first.
//
// Activities without a known category are skipped.
func SummarizeByCategory(activities []Activity, categories []Category) []CategorySummary {
	categoryByID := make(map[int64]Category, len(categories))
	for _, category := range categories {
		categoryByID[category.ID] = category
	}

	totals := map[int64]*CategorySummary{}
	for _, activity := range activities {
		if activity.CategoryID == nil {
			continue
		}
		category, ok := categoryByID[*activity.CategoryID]
		if !ok {
			continue
		}

		summary, ok := totals[category.ID]
		if !ok {
			summary = &CategorySummary{
				CategoryID: category.ID,
				Name:       category.Name,
				Color:      category.Color,
			}
			totals[category.ID] = summary
		}
		summary.DurationMinutes += activity.DurationMinutes()
	}

	summaries := make([]CategorySummary, 0, len(totals))
	for _, summary := range totals {
		summaries = append(summaries, *summary)
	}

	slices.SortFunc(summaries, func(a, b CategorySummary) int {
		if a.DurationMinutes != b.DurationMinutes {
			return b.DurationMinutes - a.DurationMinutes
		}
		if a.CategoryID < b.CategoryID {
			return -1
		}
		if a.CategoryID > b.CategoryID {
			return 1
		}
		return 0
	})

	return summaries
}
