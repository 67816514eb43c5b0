package query

import (
	"math"
	"time"

	"github.com/mew228/Flowstate/internal/core/domain"
)

const weekDays = 7

type DayCount struct {
	Date  time.Time
	Label string
	Count int
}

type Stats struct {
	TotalCount     int
	CompletedCount int
	PendingCount   int
	CompletionRate int
	Weekly         [weekDays]DayCount
	OverdueCount   int
}

// ComputeStats aggregates completion counts, the completion histogram of the
// seven calendar days ending on now (oldest first) and the overdue count.
// Calendar days are taken in now's location.
func ComputeStats(tasks []domain.Task, now time.Time) Stats {
	loc := now.Location()
	today := startOfDay(now, loc)

	var stats Stats
	for i := 0; i < weekDays; i++ {
		day := today.AddDate(0, 0, i-(weekDays-1))
		stats.Weekly[i] = DayCount{Date: day, Label: day.Format("Mon")}
	}

	for _, task := range tasks {
		stats.TotalCount++

		if !task.Completed {
			stats.PendingCount++
			if isOverdue(task, today) {
				stats.OverdueCount++
			}
			continue
		}

		stats.CompletedCount++
		if task.CompletedAt == nil {
			continue
		}
		completedDay := startOfDay(task.CompletedAt.In(loc), loc)
		for i := range stats.Weekly {
			if stats.Weekly[i].Date.Equal(completedDay) {
				stats.Weekly[i].Count++
				break
			}
		}
	}

	if stats.TotalCount > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.CompletedCount) / float64(stats.TotalCount) * 100))
	}

	return stats
}

// MaxDayCount is the histogram scale; it is never below one.
func (s Stats) MaxDayCount() int {
	highest := 1
	for _, d := range s.Weekly {
		if d.Count > highest {
			highest = d.Count
		}
	}
	return highest
}

// isOverdue treats a due date as a calendar date: due today is not overdue.
func isOverdue(task domain.Task, today time.Time) bool {
	if task.Completed || task.DueDate == nil {
		return false
	}
	due := task.DueDate
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, today.Location())
	return dueDay.Before(today)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
