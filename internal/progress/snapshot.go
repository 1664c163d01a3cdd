package progress

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot is a read-only view of a tracker's public metrics. The bounded
// metrics are zero unless Bounded is set.
type Snapshot struct {
	Index   int64
	Elapsed time.Duration
	Avg     time.Duration
	Rate    float64

	Bounded   bool
	Max       int64
	Remaining int64
	ETA       time.Duration
	Progress  float64
	Percent   float64
	Total     time.Duration

	Fields map[string]any
}

// Field looks up a metric or caller field by display name. Metric names
// shadow caller fields. Names starting with an underscore are internal and
// always reported absent, as are bounded metrics on an unbounded snapshot.
func (s Snapshot) Field(name string) (any, bool) {
	if name == "" || strings.HasPrefix(name, "_") {
		return nil, false
	}

	switch name {
	case "index":
		return s.Index, true
	case "elapsed":
		return int64(s.Elapsed / time.Second), true
	case "elapsed_td":
		return s.Elapsed, true
	case "avg":
		return s.Avg.Seconds(), true
	case "rate":
		return s.Rate, true
	}

	if s.Bounded {
		switch name {
		case "max":
			return s.Max, true
		case "remaining":
			return s.Remaining, true
		case "eta":
			return int64(s.ETA / time.Second), true
		case "eta_td":
			return s.ETA, true
		case "progress":
			return s.Progress, true
		case "percent":
			return s.Percent, true
		case "total":
			return int64(s.Total / time.Second), true
		case "total_td":
			return s.Total, true
		}
	} else if isBoundedMetric(name) {
		return nil, false
	}

	value, ok := s.Fields[name]
	return value, ok
}

func isBoundedMetric(name string) bool {
	switch name {
	case "max", "remaining", "eta", "eta_td", "progress", "percent", "total", "total_td":
		return true
	}
	return false
}

// Expand replaces {name} and {name:verb} tokens in template with field
// values. The verb is a fmt verb without the leading percent sign, for
// example {percent:.1f}. Absent fields expand to nothing and {{ or }} produce
// literal braces.
func (s Snapshot) Expand(template string) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				b.WriteString(template[i:])
				return b.String()
			}
			b.WriteString(s.expandToken(template[i+1 : i+1+end]))
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (s Snapshot) expandToken(token string) string {
	name, verb, hasVerb := strings.Cut(token, ":")
	value, ok := s.Field(strings.TrimSpace(name))
	if !ok {
		return ""
	}
	if hasVerb && verb != "" {
		return fmt.Sprintf("%"+verb, value)
	}
	return fmt.Sprint(value)
}
