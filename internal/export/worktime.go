package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/iksnae/chat-history/internal"
	"gopkg.in/yaml.v3"
)

type idlePeriodRecord struct {
	Start   string  `json:"start" yaml:"start"`
	End     string  `json:"end" yaml:"end"`
	Seconds float64 `json:"seconds" yaml:"seconds"`
}

type longResponseRecord struct {
	Question          string             `json:"question" yaml:"question"`
	Start             string             `json:"start" yaml:"start"`
	End               string             `json:"end" yaml:"end"`
	SpanSeconds       float64            `json:"span_seconds" yaml:"span_seconds"`
	ActiveSeconds     float64            `json:"active_seconds" yaml:"active_seconds"`
	IdleSeconds       float64            `json:"idle_seconds" yaml:"idle_seconds"`
	AssistantMessages int                `json:"assistant_messages" yaml:"assistant_messages"`
	ToolInvocations   int                `json:"tool_invocations" yaml:"tool_invocations"`
	IdlePeriods       []idlePeriodRecord `json:"idle_periods,omitempty" yaml:"idle_periods,omitempty"`
}

// WorkTimeRecord is the serialized form of a work-time result
type WorkTimeRecord struct {
	Project       string               `json:"project,omitempty" yaml:"project,omitempty"`
	TotalSeconds  float64              `json:"total_seconds" yaml:"total_seconds"`
	Total         string               `json:"total" yaml:"total"`
	Bursts        int                  `json:"bursts" yaml:"bursts"`
	SkippedBursts int                  `json:"skipped_bursts" yaml:"skipped_bursts"`
	LongResponses []longResponseRecord `json:"long_responses" yaml:"long_responses"`
}

// WorkTimeDocument is what the reconstruct command writes
type WorkTimeDocument struct {
	Source                string           `json:"source" yaml:"source"`
	IdleThreshold         string           `json:"idle_threshold" yaml:"idle_threshold"`
	LongResponseThreshold string           `json:"long_response_threshold" yaml:"long_response_threshold"`
	Messages              int              `json:"messages" yaml:"messages"`
	Overall               WorkTimeRecord   `json:"overall" yaml:"overall"`
	Projects              []WorkTimeRecord `json:"projects,omitempty" yaml:"projects,omitempty"`
}

// NewWorkTimeDocument converts reconstruction results into their serialized form.
// byProject may be nil.
func NewWorkTimeDocument(source string, cfg internal.WorkTimeConfig, messages int, overall internal.WorkTimeResult, byProject map[string]internal.WorkTimeResult) WorkTimeDocument {
	doc := WorkTimeDocument{
		Source:                source,
		IdleThreshold:         cfg.IdleThreshold.String(),
		LongResponseThreshold: cfg.LongResponseThreshold.String(),
		Messages:              messages,
		Overall:               newWorkTimeRecord("", overall),
	}

	names := make([]string, 0, len(byProject))
	for name := range byProject {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.Projects = append(doc.Projects, newWorkTimeRecord(name, byProject[name]))
	}
	return doc
}

func newWorkTimeRecord(project string, result internal.WorkTimeResult) WorkTimeRecord {
	rec := WorkTimeRecord{
		Project:       project,
		TotalSeconds:  result.TotalTime.Seconds(),
		Total:         internal.FormatDuration(result.TotalTime),
		Bursts:        result.Bursts,
		SkippedBursts: result.SkippedBursts,
		LongResponses: make([]longResponseRecord, 0, len(result.LongResponses)),
	}
	for _, r := range result.LongResponses {
		lr := longResponseRecord{
			Question:          r.QuestionPreview,
			Start:             r.Start.Format(time.RFC3339),
			End:               r.End.Format(time.RFC3339),
			SpanSeconds:       r.TotalSpan.Seconds(),
			ActiveSeconds:     r.ActiveDuration.Seconds(),
			IdleSeconds:       r.IdleTotal().Seconds(),
			AssistantMessages: r.AssistantMessages,
			ToolInvocations:   r.ToolInvocations,
		}
		for _, p := range r.IdlePeriods {
			lr.IdlePeriods = append(lr.IdlePeriods, idlePeriodRecord{
				Start:   p.Start.Format(time.RFC3339),
				End:     p.End.Format(time.RFC3339),
				Seconds: p.Duration.Seconds(),
			})
		}
		rec.LongResponses = append(rec.LongResponses, lr)
	}
	return rec
}

// WriteWorkTime writes the document as "json" or "yaml"
func WriteWorkTime(w io.Writer, format string, doc WorkTimeDocument) error {
	switch format {
	case "json":
		if err := json.MarshalWrite(w, doc, jsontext.WithIndent("  ")); err != nil {
			return &internal.ExportError{Format: format, Err: err}
		}
		_, err := io.WriteString(w, "\n")
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		if err := enc.Encode(doc); err != nil {
			return &internal.ExportError{Format: format, Err: err}
		}
		return nil
	default:
		return &internal.ExportError{Format: format, Err: fmt.Errorf("unsupported format (supported: json, yaml)")}
	}
}
