package session

import "fmt"

// Event categories.
const (
	CatRound   = "round"
	CatState   = "state"
	CatSave    = "save"
	CatWarning = "warning"
	CatRegion  = "region"
	CatMarker  = "marker"
	CatTick    = "tick" // verbose only
)

// Entry is one recorded session event.
type Entry struct {
	Tick     int
	Category string // round, state, save, warning, region, marker, tick
	Key      string // event name within the category
	Value    string // human-readable detail
	Num      float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=0421] round    end              failure
func (e Entry) String() string {
	return fmt.Sprintf("[T=%04d] %-8s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// Log collects session events. It is unbounded and machine-readable; the
// headless report and tests read it back with Filter.
type Log struct {
	entries []Entry
	verbose bool
}

// NewLog creates a Log. Verbose logs also keep a per-tick player trace
// under CatTick.
func NewLog(verbose bool) *Log {
	return &Log{verbose: verbose}
}

// Add records an entry.
func (l *Log) Add(tick int, category, key, value string, num float64) {
	l.entries = append(l.entries, Entry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		Num:      num,
	})
}

// AddVerbose records an entry only in verbose mode.
func (l *Log) AddVerbose(tick int, category, key, value string, num float64) {
	if !l.verbose {
		return
	}
	l.Add(tick, category, key, value, num)
}

// Verbose reports whether verbose entries are kept.
func (l *Log) Verbose() bool { return l.verbose }

// Entries returns every entry in order.
func (l *Log) Entries() []Entry { return l.entries }

// Filter returns entries matching category and key. An empty string
// matches anything.
func (l *Log) Filter(category, key string) []Entry {
	var out []Entry
	for _, e := range l.entries {
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

// Count is len(Filter(category, key)).
func (l *Log) Count(category, key string) int {
	n := 0
	for _, e := range l.entries {
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			n++
		}
	}
	return n
}
