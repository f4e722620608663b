package game

import (
	"fmt"
	"strings"
)

// Log categories.
const (
	CatEpisode = "episode"
	CatSearch  = "search"
	CatView    = "view"
	CatConfig  = "config"
	CatUI      = "ui"
)

// SearchLogEntry is one recorded controller event.
type SearchLogEntry struct {
	Episode  int
	Frame    int
	Category string  // episode, search, view, config, ui
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[E=003 F=00412] episode  arrived          distance 57
func (e SearchLogEntry) String() string {
	return fmt.Sprintf("[E=%03d F=%05d] %-8s %-16s %s",
		e.Episode, e.Frame, e.Category, e.Key, e.Value)
}

// SearchLog collects structured events for the whole session. Unlike the
// LogPanel ring buffer it is unbounded and machine-readable.
type SearchLog struct {
	entries []SearchLogEntry
	verbose bool
	sink    func(SearchLogEntry)
}

// NewSearchLog creates a log. When verbose is true per-step entries are
// recorded too.
func NewSearchLog(verbose bool) *SearchLog {
	return &SearchLog{verbose: verbose}
}

// Verbose reports whether per-step entries are kept.
func (sl *SearchLog) Verbose() bool { return sl.verbose }

// SetSink registers fn to receive every non-verbose entry as it is added.
func (sl *SearchLog) SetSink(fn func(SearchLogEntry)) {
	sl.sink = fn
}

// Add records a new entry.
func (sl *SearchLog) Add(episode, frame int, category, key, value string, numVal float64) {
	e := SearchLogEntry{
		Episode:  episode,
		Frame:    frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	sl.entries = append(sl.entries, e)
	if sl.sink != nil {
		sl.sink(e)
	}
}

// AddVerbose records an entry only when verbose mode is on. Verbose
// entries are not forwarded to the sink.
func (sl *SearchLog) AddVerbose(episode, frame int, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.entries = append(sl.entries, SearchLogEntry{
		Episode:  episode,
		Frame:    frame,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all recorded entries.
func (sl *SearchLog) Entries() []SearchLogEntry {
	return sl.entries
}

// Len returns the number of entries.
func (sl *SearchLog) Len() int { return len(sl.entries) }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SearchLog) Filter(category, key string) []SearchLogEntry {
	var out []SearchLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEpisode returns entries recorded during one episode.
func (sl *SearchLog) FilterEpisode(episode int) []SearchLogEntry {
	var out []SearchLogEntry
	for _, e := range sl.entries {
		if e.Episode == episode {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SearchLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SearchLog) LastOf(category, key string) (SearchLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		e := sl.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SearchLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SearchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string.
func (sl *SearchLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatTail returns the last n entries as a string.
func (sl *SearchLog) FormatTail(n int) string {
	from := len(sl.entries) - n
	if from < 0 {
		from = 0
	}
	return formatEntries(sl.entries[from:])
}

func formatEntries(entries []SearchLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
