package model

// ServiceState classifies the runtime state of a service's container.
type ServiceState string

const (
	StateRunning    ServiceState = "running"
	StateStopped    ServiceState = "stopped"
	StateStarting   ServiceState = "starting"
	StateRestarting ServiceState = "restarting"
	StatePaused     ServiceState = "paused"
	StateDead       ServiceState = "dead"
	StateUnknown    ServiceState = "unknown"
)

// HealthState classifies the health-check result of a running service.
type HealthState string

const (
	HealthHealthy   HealthState = "healthy"
	HealthUnhealthy HealthState = "unhealthy"
	HealthStarting  HealthState = "starting"
	HealthNone      HealthState = "none"
)

// ServiceStatusRecord is the canonical status view of one service,
// independent of which raw output format it was parsed from.
type ServiceStatusRecord struct {
	Name       string
	State      ServiceState
	Health     HealthState
	UptimeText string
	Ports      []string // "host:container"
	Image      string
	CreatedAt  string
}
