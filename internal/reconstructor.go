package internal

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

const (
	// DefaultIdleThreshold is the longest gap between response events still counted as work
	DefaultIdleThreshold = 30 * time.Minute
	// DefaultLongResponseThreshold is the burst span at which a long-response report is produced
	DefaultLongResponseThreshold = time.Hour

	questionPreviewLength = 100
)

// WorkTimeConfig holds the policy knobs of the work-time reconstruction
type WorkTimeConfig struct {
	IdleThreshold         time.Duration
	LongResponseThreshold time.Duration
}

// DefaultWorkTimeConfig returns the default thresholds
func DefaultWorkTimeConfig() WorkTimeConfig {
	return WorkTimeConfig{
		IdleThreshold:         DefaultIdleThreshold,
		LongResponseThreshold: DefaultLongResponseThreshold,
	}
}

// IdlePeriod is a gap inside a burst that was excluded from active time
type IdlePeriod struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// LongResponseReport describes a burst whose wall-clock span reached the long-response threshold
type LongResponseReport struct {
	QuestionPreview   string
	Start             time.Time
	End               time.Time
	TotalSpan         time.Duration
	ActiveDuration    time.Duration
	IdlePeriods       []IdlePeriod
	AssistantMessages int
	ToolInvocations   int
}

// IdleTotal sums the durations of all idle periods
func (r LongResponseReport) IdleTotal() time.Duration {
	var total time.Duration
	for _, p := range r.IdlePeriods {
		total += p.Duration
	}
	return total
}

// WorkTimeResult is the outcome of reconstructing a whole timeline
type WorkTimeResult struct {
	TotalTime     time.Duration
	LongResponses []LongResponseReport
	Bursts        int
	SkippedBursts int
}

// responseEvent is one point in time inside a burst
type responseEvent struct {
	at             time.Time
	toolInvocation bool
	toolResult     bool
}

// burst holds everything collected after one genuine question
type burst struct {
	question          *Message
	events            []responseEvent
	assistantMessages int
	toolInvocations   int
}

// Reconstructor computes assistant working time from a sorted, deduplicated timeline
type Reconstructor struct {
	config WorkTimeConfig
}

// NewReconstructor creates a Reconstructor; zero thresholds fall back to the defaults
func NewReconstructor(config WorkTimeConfig) *Reconstructor {
	if config.IdleThreshold <= 0 {
		config.IdleThreshold = DefaultIdleThreshold
	}
	if config.LongResponseThreshold <= 0 {
		config.LongResponseThreshold = DefaultLongResponseThreshold
	}
	return &Reconstructor{config: config}
}

// Config returns the thresholds in effect
func (r *Reconstructor) Config() WorkTimeConfig {
	return r.config
}

// Reconstruct walks the timeline once, splitting it into question/response
// bursts and summing the active time of each. messages must be sorted by time.
func (r *Reconstructor) Reconstruct(messages []*Message) WorkTimeResult {
	var result WorkTimeResult

	// Invariant: messages[0:i] are either consumed by a burst or were not questions.
	i := 0
	for i < len(messages) {
		if !isQuestion(messages[i]) {
			i++
			continue
		}

		b, next, err := r.collectBurst(messages, i)
		// next is always > i, so the scan makes progress even for skipped bursts.
		i = next
		if err != nil {
			LogDebug("Skipping burst: %v", err)
			result.SkippedBursts++
			continue
		}
		result.Bursts++

		active, span, idle := r.measureBurst(b.events)
		if active <= 0 {
			continue
		}
		result.TotalTime += active

		if span >= r.config.LongResponseThreshold {
			result.LongResponses = append(result.LongResponses, LongResponseReport{
				QuestionPreview:   Preview(b.question.FirstText(), questionPreviewLength),
				Start:             b.events[0].at,
				End:               b.events[len(b.events)-1].at,
				TotalSpan:         span,
				ActiveDuration:    active,
				IdlePeriods:       idle,
				AssistantMessages: b.assistantMessages,
				ToolInvocations:   b.toolInvocations,
			})
		}
	}

	return result
}

// ReconstructByProject runs Reconstruct for every partition. Partitions share
// no state, so each one is computed on its own goroutine.
func (r *Reconstructor) ReconstructByProject(groups map[string][]*Message) map[string]WorkTimeResult {
	names := ProjectNames(groups)
	results := make([]WorkTimeResult, len(names))

	var wg sync.WaitGroup
	for idx, name := range names {
		wg.Add(1)
		go func(idx int, messages []*Message) {
			defer wg.Done()
			results[idx] = r.Reconstruct(messages)
		}(idx, groups[name])
	}
	wg.Wait()

	byProject := make(map[string]WorkTimeResult, len(names))
	for idx, name := range names {
		byProject[name] = results[idx]
	}
	return byProject
}

// collectBurst gathers the response events that follow the question at
// messages[start]. It returns the index of the message that ended the burst
// (len(messages) when the timeline ran out), which is always > start.
func (r *Reconstructor) collectBurst(messages []*Message, start int) (*burst, int, error) {
	question := messages[start]
	b := &burst{
		question: question,
		events:   []responseEvent{{at: question.Timestamp}},
	}

	var parseErr error
	if !question.TimestampValid {
		parseErr = &BurstError{Question: question.IdentityKey, Err: fmt.Errorf("invalid question timestamp %q", question.RawTimestamp)}
	}

	j := start + 1
	for ; j < len(messages); j++ {
		msg := messages[j]

		if isResponse(msg) {
			if !msg.TimestampValid && parseErr == nil {
				parseErr = &BurstError{Question: question.IdentityKey, Err: fmt.Errorf("invalid response timestamp %q", msg.RawTimestamp)}
			}
			b.events = append(b.events, responseEvent{
				at:             msg.Timestamp,
				toolInvocation: msg.HasToolInvocation,
				toolResult:     msg.HasToolResult,
			})
			b.assistantMessages++
			if msg.HasToolInvocation {
				b.toolInvocations++
			}
			continue
		}

		if isQuestionCandidate(msg) {
			break
		}
	}

	if parseErr != nil {
		return nil, j, parseErr
	}
	return b, j, nil
}

// measureBurst classifies every gap between consecutive events and returns
// the active time, the total span and the idle periods.
func (r *Reconstructor) measureBurst(events []responseEvent) (time.Duration, time.Duration, []IdlePeriod) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	var active time.Duration
	var idle []IdlePeriod

	for k := 0; k+1 < len(events); k++ {
		current, next := events[k], events[k+1]
		gap := next.at.Sub(current.at)

		// A tool call is running between the invocation and its result; the
		// assistant is blocked on it no matter how long it takes.
		toolExecution := current.toolInvocation && next.toolResult

		if toolExecution || gap <= r.config.IdleThreshold {
			active += gap
			continue
		}
		idle = append(idle, IdlePeriod{Start: current.at, End: next.at, Duration: gap})
	}

	var span time.Duration
	if len(events) > 1 {
		span = events[len(events)-1].at.Sub(events[0].at)
	}

	return active, span, idle
}

// isQuestion reports whether a message starts a burst: a user turn with real
// text that is not a tool-result carrier.
func isQuestion(msg *Message) bool {
	return isQuestionCandidate(msg) && msg.HasText()
}

// isQuestionCandidate reports whether a message ends a burst. Empty user
// turns end a burst even though they never start one.
func isQuestionCandidate(msg *Message) bool {
	return msg.IsUser() && !msg.HasToolResult
}

// isResponse reports whether a message belongs to a burst. User-role
// tool-result carriers count here even though they can never be questions.
func isResponse(msg *Message) bool {
	return msg.IsAssistant() || msg.HasToolResult
}
