package internal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayCount is the number of messages on one calendar day
type DayCount struct {
	Date  string
	Count int
}

// Statistics is the aggregate view printed by the stats command
type Statistics struct {
	MainFiles         int
	AgentFiles        int
	SkippedLines      int
	RawMessages       int
	UniqueMessages    int
	UserMessages      int
	AssistantMessages int
	Sessions          int
	Earliest          time.Time
	Latest            time.Time
	Daily             []DayCount // newest first
	WorkTime          WorkTimeResult
}

// ProjectStatistics is one row of the per-project breakdown
type ProjectStatistics struct {
	Project           string
	RawMessages       int
	UniqueMessages    int
	UserMessages      int
	AssistantMessages int
	Sessions          int
	WorkTime          WorkTimeResult
}

// ComputeStatistics deduplicates, sorts and reconstructs the whole load result
func ComputeStatistics(load *LoadResult, cfg WorkTimeConfig) *Statistics {
	timeline := BuildTimeline(load.Messages, true)

	stats := &Statistics{
		MainFiles:      load.MainFiles(),
		AgentFiles:     load.AgentFiles(),
		SkippedLines:   load.SkippedLines,
		RawMessages:    len(load.Messages),
		UniqueMessages: len(timeline),
	}
	stats.UserMessages, stats.AssistantMessages = countRoles(timeline)
	stats.Sessions = countSessions(timeline)

	byDate := make(map[string]int)
	for _, msg := range timeline {
		if !msg.TimestampValid {
			continue
		}
		byDate[msg.Date()]++
		if stats.Earliest.IsZero() || msg.Timestamp.Before(stats.Earliest) {
			stats.Earliest = msg.Timestamp
		}
		if msg.Timestamp.After(stats.Latest) {
			stats.Latest = msg.Timestamp
		}
	}
	for date, count := range byDate {
		stats.Daily = append(stats.Daily, DayCount{Date: date, Count: count})
	}
	sort.Slice(stats.Daily, func(i, j int) bool {
		return stats.Daily[i].Date > stats.Daily[j].Date
	})

	stats.WorkTime = NewReconstructor(cfg).Reconstruct(timeline)
	return stats
}

// ComputeProjectStatistics computes statistics per project. Each project is
// deduplicated and reconstructed on its own.
func ComputeProjectStatistics(load *LoadResult, cfg WorkTimeConfig) []ProjectStatistics {
	raw := GroupByProject(load.Messages)
	deduped := NewDeduplicator().DeduplicateByProject(load.Messages)
	for _, group := range deduped {
		SortTimeline(group)
	}

	work := NewReconstructor(cfg).ReconstructByProject(deduped)

	names := ProjectNames(deduped)
	rows := make([]ProjectStatistics, 0, len(names))
	for _, name := range names {
		timeline := deduped[name]
		row := ProjectStatistics{
			Project:        name,
			RawMessages:    len(raw[name]),
			UniqueMessages: len(timeline),
			Sessions:       countSessions(timeline),
			WorkTime:       work[name],
		}
		row.UserMessages, row.AssistantMessages = countRoles(timeline)
		rows = append(rows, row)
	}
	return rows
}

// Removed returns how many messages deduplication dropped
func (s *Statistics) Removed() int {
	return s.RawMessages - s.UniqueMessages
}

// RemovedPercent returns the share of duplicates as a whole percentage
func (s *Statistics) RemovedPercent() int {
	if s.RawMessages == 0 {
		return 0
	}
	return s.Removed() * 100 / s.RawMessages
}

// DaySpan is the number of whole days between the earliest and latest message
func (s *Statistics) DaySpan() int {
	if s.Earliest.IsZero() || s.Latest.IsZero() {
		return 0
	}
	return int(s.Latest.Sub(s.Earliest) / (24 * time.Hour))
}

// AverageResponseTime divides total work time by the number of assistant messages
func (s *Statistics) AverageResponseTime() (time.Duration, bool) {
	if s.AssistantMessages == 0 {
		return 0, false
	}
	return s.WorkTime.TotalTime / time.Duration(s.AssistantMessages), true
}

// WorkPercentage is total work time as a share of the earliest-to-latest span
func (s *Statistics) WorkPercentage() (float64, bool) {
	span := s.Latest.Sub(s.Earliest)
	if s.Earliest.IsZero() || span <= 0 {
		return 0, false
	}
	return s.WorkTime.TotalTime.Seconds() / span.Seconds() * 100, true
}

// RecentDays returns the n most recent days that have messages, newest first
func (s *Statistics) RecentDays(n int) []DayCount {
	if n <= 0 || n >= len(s.Daily) {
		return s.Daily
	}
	return s.Daily[:n]
}

// HistogramBar draws a full block per 10 messages and a half block per remaining 5
func HistogramBar(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat("█", count/10) + strings.Repeat("▌", (count%10)/5)
}

// FormatDuration renders a duration as "1h 2m 3s", dropping zero parts
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

func countRoles(messages []*Message) (user, assistant int) {
	for _, msg := range messages {
		switch msg.Role {
		case RoleUser:
			user++
		case RoleAssistant:
			assistant++
		}
	}
	return user, assistant
}

func countSessions(messages []*Message) int {
	seen := make(map[string]bool)
	for _, msg := range messages {
		if msg.SessionID != "" {
			seen[msg.SessionID] = true
		}
	}
	return len(seen)
}
