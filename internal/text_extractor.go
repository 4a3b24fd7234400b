package internal

import (
	"bytes"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// decodeContent turns a raw "content" value into content blocks.
// A bare string becomes a single text block; block types listed in remap are renamed.
func decodeContent(raw jsontext.Value, remap map[string]string) []ContentBlock {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
		return []ContentBlock{{Type: BlockText, Text: text}}
	case '[':
		var items []jsontext.Value
		if err := json.Unmarshal(raw, &items); err != nil {
			LogDebug("Failed to decode content blocks: %v", err)
			return nil
		}
		blocks := make([]ContentBlock, 0, len(items))
		for _, item := range items {
			rb, ok := decodeBlock(item)
			if !ok {
				continue
			}
			blockType := rb.Type
			if mapped, ok := remap[blockType]; ok {
				blockType = mapped
			}
			blocks = append(blocks, ContentBlock{
				Type:      blockType,
				Text:      rb.Text,
				Thinking:  rb.Thinking,
				ToolID:    rb.ID,
				ToolName:  rb.Name,
				Input:     rb.Input,
				ToolUseID: rb.ToolUseID,
				Output:    extractToolOutput(rb.Content),
				IsError:   rb.IsError,
			})
		}
		return blocks
	default:
		return nil
	}
}

// decodeBlock decodes one content block. A field of the wrong type is left at
// its zero value instead of discarding the block; only non-objects are rejected.
func decodeBlock(raw jsontext.Value) (rawContentBlock, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return rawContentBlock{}, false
	}

	var rb rawContentBlock
	if err := json.Unmarshal(raw, &rb); err == nil {
		return rb, true
	}

	var fields map[string]jsontext.Value
	if err := json.Unmarshal(raw, &fields); err != nil {
		LogDebug("Skipping content block: %v", err)
		return rawContentBlock{}, false
	}

	rb = rawContentBlock{}
	field := func(name string, dst any) {
		if value, ok := fields[name]; ok {
			if err := json.Unmarshal(value, dst); err != nil {
				LogDebug("Ignoring malformed %q in content block: %v", name, err)
			}
		}
	}
	field("type", &rb.Type)
	field("text", &rb.Text)
	field("thinking", &rb.Thinking)
	field("id", &rb.ID)
	field("name", &rb.Name)
	field("input", &rb.Input)
	field("tool_use_id", &rb.ToolUseID)
	field("is_error", &rb.IsError)
	rb.Content = fields["content"]
	return rb, true
}

// extractToolOutput flattens a tool_result "content" value into display text.
// Strings pass through, lists of text blocks are joined by newlines and
// anything else is kept as compact JSON.
func extractToolOutput(raw jsontext.Value) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return text
		}
	case '[':
		var parts []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &parts); err == nil {
			var texts []string
			for _, part := range parts {
				if part.Type == BlockText {
					texts = append(texts, part.Text)
				}
			}
			if len(texts) > 0 {
				return strings.Join(texts, "\n")
			}
		}
	}

	return string(raw)
}

// truncateRunes returns at most n runes of s
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Preview returns the first n characters of text, for question summaries
func Preview(text string, n int) string {
	return truncateRunes(text, n)
}

// Ellipsize shortens text to at most n characters, marking the cut with "..."
func Ellipsize(text string, n int) string {
	if len([]rune(text)) <= n {
		return text
	}
	if n <= 3 {
		return truncateRunes(text, n)
	}
	return truncateRunes(text, n-3) + "..."
}
