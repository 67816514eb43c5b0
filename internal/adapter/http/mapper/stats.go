package mapper

import (
	"github.com/mew228/Flowstate/internal/adapter/http/dto"
	"github.com/mew228/Flowstate/internal/core/query"
)

func ToStatsItem(stats query.Stats) dto.StatsItem {
	item := dto.StatsItem{
		TotalCount:     stats.TotalCount,
		CompletedCount: stats.CompletedCount,
		PendingCount:   stats.PendingCount,
		CompletionRate: stats.CompletionRate,
		OverdueCount:   stats.OverdueCount,
		MaxDayCount:    stats.MaxDayCount(),
		Weekly:         make([]dto.DayCountItem, 0, len(stats.Weekly)),
	}

	for _, day := range stats.Weekly {
		item.Weekly = append(item.Weekly, dto.DayCountItem{
			Date:  day.Date.Format(dateLayout),
			Label: day.Label,
			Count: day.Count,
		})
	}

	return item
}
