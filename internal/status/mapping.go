package status

import (
	"regexp"
	"strings"

	"github.com/nleclerc/dockhand/internal/model"
)

// MapState maps free-form state text onto the closed ServiceState enum.
// Matching is substring-based and case-insensitive; anything
// unrecognized is unknown, never an error.
func MapState(text string) model.ServiceState {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "up") || strings.Contains(lower, "running"):
		return model.StateRunning
	case strings.Contains(lower, "exit") || strings.Contains(lower, "stopped"):
		return model.StateStopped
	case strings.Contains(lower, "restarting"):
		return model.StateRestarting
	case strings.Contains(lower, "paused"):
		return model.StatePaused
	case strings.Contains(lower, "dead"):
		return model.StateDead
	case strings.Contains(lower, "starting"):
		return model.StateStarting
	default:
		return model.StateUnknown
	}
}

// MapHealth maps free-form health text onto the closed HealthState
// enum. "unhealthy" is checked first because it contains "healthy".
func MapHealth(text string) model.HealthState {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "unhealthy"):
		return model.HealthUnhealthy
	case strings.Contains(lower, "healthy"):
		return model.HealthHealthy
	case strings.Contains(lower, "starting"):
		return model.HealthStarting
	default:
		return model.HealthNone
	}
}

var (
	arrowPortPattern = regexp.MustCompile(`(\d+)->(\d+)`)
	colonPortPattern = regexp.MustCompile(`(\d+):(\d+)`)
)

// ExtractPorts collects host:container pairs from free-form port text,
// in order of appearance. It understands the publisher arrow form
// ("0.0.0.0:8080->80/tcp") and bare "8080:80" pairs; a colon pair
// preceded by a dot is part of an IP address, not a mapping.
func ExtractPorts(text string) []string {
	var ports []string

	for _, m := range arrowPortPattern.FindAllStringSubmatch(text, -1) {
		ports = append(ports, m[1]+":"+m[2])
	}
	if len(ports) > 0 {
		return ports
	}

	for _, idx := range colonPortPattern.FindAllStringSubmatchIndex(text, -1) {
		start := idx[0]
		if start > 0 && (text[start-1] == '.' || text[start-1] == ':') {
			continue
		}
		ports = append(ports, text[idx[2]:idx[3]]+":"+text[idx[4]:idx[5]])
	}
	return ports
}

var (
	underscoreInstance = regexp.MustCompile(`^(.*)_(\d+)$`)
	dashInstance       = regexp.MustCompile(`^(.*)-(\d+)$`)
)

// NormalizeServiceName recovers the bare service name from a container
// name that carries the control plane's project prefix and instance
// suffix, e.g. "myproject_web_1" -> "web". The dash convention of newer
// control planes only drops the instance suffix, since dashes also
// appear inside legitimate service names.
func NormalizeServiceName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, "/")

	if m := underscoreInstance.FindStringSubmatch(name); m != nil {
		rest := m[1]
		if idx := strings.LastIndex(rest, "_"); idx != -1 {
			return rest[idx+1:]
		}
		return rest
	}

	if m := dashInstance.FindStringSubmatch(name); m != nil {
		return m[1]
	}

	return name
}
