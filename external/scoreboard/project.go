package scoreboard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sport-search/internal/domain/view"
	"github.com/valyala/bytebufferpool"
)

type searchEnvelope struct {
	OK           bool  `json:"ok"`
	Schedule     []any `json:"schedule"`
	Items        []any `json:"items"`
	Stats        []any `json:"stats"`
	Leaderboards []any `json:"leaderboards"`
}

// projectResult shallow-maps the untyped provider payload into display rows
// with first-match-wins field fallback. The schedule list prefers the
// `schedule` key over `items`, the stats list prefers `stats` over
// `leaderboards`.
func projectResult(envelope searchEnvelope) view.Result {
	scheduleItems := envelope.Schedule
	if len(scheduleItems) == 0 {
		scheduleItems = envelope.Items
	}
	statItems := envelope.Stats
	if len(statItems) == 0 {
		statItems = envelope.Leaderboards
	}

	return view.Result{
		OK:       envelope.OK,
		Schedule: projectScheduleRows(scheduleItems),
		Stats:    projectStatRows(statItems),
	}
}

func projectScheduleRows(items []any) []view.ScheduleRow {
	out := make([]view.ScheduleRow, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			out = append(out, view.ScheduleRow{Title: renderRaw(item)})
			continue
		}

		row := view.ScheduleRow{
			Title:  firstString(record, "title", "name"),
			Detail: firstString(record, "detail", "description"),
		}
		if row.Title == "" {
			row.Title = renderRaw(record)
		}
		out = append(out, row)
	}
	return out
}

func projectStatRows(items []any) []view.StatRow {
	out := make([]view.StatRow, 0, len(items))
	for _, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			out = append(out, view.StatRow{Statline: renderRaw(item)})
			continue
		}

		row := view.StatRow{
			Name:     firstString(record, "name", "player"),
			Team:     firstString(record, "team", "position"),
			Statline: firstString(record, "statline", "stats"),
		}
		if row.Statline == "" {
			row.Statline = renderRaw(record)
		}
		out = append(out, row)
	}
	return out
}

func firstString(src map[string]any, keys ...string) string {
	if src == nil {
		return ""
	}
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// renderRaw is the last-ditch display form of an item that carried none of
// the expected fields: scalars verbatim, anything else a truncated JSON dump.
func renderRaw(item any) string {
	switch typed := item.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case bool:
		return fmt.Sprintf("%t", typed)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", typed), "0"), ".")
	default:
		return truncateJSON(typed, statlineMaxRunes)
	}
}

func truncateJSON(item any, maxRunes int) string {
	raw, err := sonic.Marshal(item)
	if err != nil {
		return ""
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(raw)

	value := buf.String()
	if utf8.RuneCountInString(value) <= maxRunes {
		return value
	}

	runes := []rune(value)
	return string(runes[:maxRunes]) + "..."
}
