// Package status normalizes raw control-plane output into canonical
// per-service status records. It accepts the JSON-lines shape emitted
// by newer compose binaries and the tabular shape of older ones, and
// never fails on malformed input: what cannot be parsed is dropped.
package status

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/nleclerc/dockhand/internal/model"
)

// FormatHint tells Normalize which source shape to expect. HintNone
// auto-detects per input.
type FormatHint string

const (
	HintNone      FormatHint = ""
	HintJSONLines FormatHint = "json"
	HintTable     FormatHint = "table"
)

// Field-name aliases per logical field, tried in priority order. The
// external tool's JSON output is not consistent about key naming across
// versions.
var (
	nameAliases    = []string{"Service", "Name"}
	stateAliases   = []string{"State", "Status"}
	healthAliases  = []string{"Health"}
	imageAliases   = []string{"Image"}
	uptimeAliases  = []string{"Status", "RunningFor"}
	createdAliases = []string{"CreatedAt", "Created"}
)

// Normalize parses raw output into status records. Empty or
// unrecognizable input yields an empty list, never an error: callers
// treat that as "no status available".
func Normalize(raw string, hint FormatHint) []model.ServiceStatusRecord {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch hint {
	case HintJSONLines:
		return parseJSONLines(raw)
	case HintTable:
		return parseTable(raw)
	}

	if looksLikeJSONLines(raw) {
		if records := parseJSONLines(raw); len(records) > 0 {
			return records
		}
	}
	return parseTable(raw)
}

func looksLikeJSONLines(raw string) bool {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, "{") || strings.HasPrefix(line, "[")
	}
	return false
}

func parseJSONLines(raw string) []model.ServiceStatusRecord {
	var records []model.ServiceStatusRecord

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Some versions emit a single JSON array instead of one object
		// per line.
		if strings.HasPrefix(line, "[") {
			var objs []map[string]interface{}
			if err := json.Unmarshal([]byte(line), &objs); err != nil {
				continue
			}
			for _, obj := range objs {
				if rec, ok := recordFromObject(obj); ok {
					records = append(records, rec)
				}
			}
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			continue
		}
		if rec, ok := recordFromObject(obj); ok {
			records = append(records, rec)
		}
	}

	return records
}

func recordFromObject(obj map[string]interface{}) (model.ServiceStatusRecord, bool) {
	name := lookupString(obj, nameAliases...)
	if name == "" {
		return model.ServiceStatusRecord{}, false
	}

	stateText := lookupString(obj, stateAliases...)
	healthText := lookupString(obj, healthAliases...)
	if healthText == "" && strings.Contains(stateText, "(") {
		// Older tools embed health in the status text: "Up 2 hours (healthy)".
		healthText = stateText
	}

	rec := model.ServiceStatusRecord{
		Name:       NormalizeServiceName(name),
		State:      MapState(stateText),
		Health:     MapHealth(healthText),
		UptimeText: lookupString(obj, uptimeAliases...),
		Image:      lookupString(obj, imageAliases...),
		CreatedAt:  lookupString(obj, createdAliases...),
	}

	rec.Ports = publisherPorts(obj)
	if len(rec.Ports) == 0 {
		rec.Ports = ExtractPorts(lookupString(obj, "Ports", "Publishers"))
	}

	return rec, true
}

// publisherPorts reads the structured Publishers list emitted by newer
// compose binaries.
func publisherPorts(obj map[string]interface{}) []string {
	pubs, ok := lookupValue(obj, "Publishers").([]interface{})
	if !ok {
		return nil
	}

	var ports []string
	for _, p := range pubs {
		m, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		published := intField(m, "PublishedPort")
		target := intField(m, "TargetPort")
		if published <= 0 || target <= 0 {
			continue
		}
		ports = append(ports, strconv.Itoa(published)+":"+strconv.Itoa(target))
	}
	return ports
}

func intField(obj map[string]interface{}, key string) int {
	switch v := lookupValue(obj, key).(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// lookupString tries each alias in order, exact key first, then a
// case-insensitive pass over the object's keys.
func lookupString(obj map[string]interface{}, aliases ...string) string {
	for _, key := range aliases {
		if s, ok := lookupValue(obj, key).(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func lookupValue(obj map[string]interface{}, key string) interface{} {
	if v, ok := obj[key]; ok {
		return v
	}
	lower := strings.ToLower(key)
	for k, v := range obj {
		if strings.ToLower(k) == lower {
			return v
		}
	}
	return nil
}

var columnSplit = regexp.MustCompile(`\t+|\s{2,}`)

func parseTable(raw string) []model.ServiceStatusRecord {
	lines := strings.Split(raw, "\n")
	var records []model.ServiceStatusRecord
	headerSkipped := false

	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "---") {
			continue
		}
		if !headerSkipped {
			headerSkipped = true
			continue
		}

		fields := columnSplit.Split(trimmed, -1)
		if len(fields) < 2 {
			continue
		}

		rec := model.ServiceStatusRecord{
			Name: NormalizeServiceName(fields[0]),
		}

		statusIdx := findStatusColumn(fields)
		if statusIdx == -1 {
			// No state keyword anywhere; treat the second column as the
			// status text and let the enum fall back to unknown.
			statusIdx = 1
		}
		if statusIdx > 1 {
			rec.Image = fields[1]
		}

		statusText := fields[statusIdx]
		rec.State = MapState(statusText)
		rec.Health = MapHealth(statusText)
		rec.UptimeText = statusText

		for _, rest := range fields[statusIdx+1:] {
			if ports := ExtractPorts(rest); len(ports) > 0 {
				rec.Ports = append(rec.Ports, ports...)
			} else if rec.CreatedAt == "" {
				rec.CreatedAt = rest
			}
		}

		records = append(records, rec)
	}

	return records
}

var statusKeywords = []string{"up", "running", "exit", "exited", "stopped", "restarting", "paused", "dead", "created"}

// findStatusColumn locates the column whose text begins with a state
// keyword. Prefix matching keeps image names like "uptime-kuma" from
// being mistaken for status text.
func findStatusColumn(fields []string) int {
	for i := 1; i < len(fields); i++ {
		lower := strings.ToLower(fields[i])
		for _, kw := range statusKeywords {
			if lower == kw {
				return i
			}
			if strings.HasPrefix(lower, kw) {
				next := lower[len(kw)]
				if next == ' ' || next == '(' {
					return i
				}
			}
		}
	}
	return -1
}
