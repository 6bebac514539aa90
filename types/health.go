package types

// Health status constants represent the outcome of a self-check.
const (
	// StatusHealthy indicates the check passed.
	StatusHealthy = "healthy"

	// StatusDegraded indicates the check passed with a warning.
	StatusDegraded = "degraded"

	// StatusUnhealthy indicates the check failed.
	StatusUnhealthy = "unhealthy"
)

// HealthStatus is the result of one named self-check.
type HealthStatus struct {
	// Check names the check that produced this status (e.g. "key source").
	Check string `json:"check"`

	// Status is healthy, degraded, or unhealthy.
	Status string `json:"status"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message,omitempty"`

	// Details carries diagnostics. Never key material.
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (h HealthStatus) IsHealthy() bool {
	return h.Status == StatusHealthy
}

// IsDegraded returns true if the status is StatusDegraded.
func (h HealthStatus) IsDegraded() bool {
	return h.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (h HealthStatus) IsUnhealthy() bool {
	return h.Status == StatusUnhealthy
}

// NewHealthyStatus creates a healthy status for check.
func NewHealthyStatus(check, message string) HealthStatus {
	return HealthStatus{Check: check, Status: StatusHealthy, Message: message}
}

// NewDegradedStatus creates a degraded status for check.
func NewDegradedStatus(check, message string, details map[string]any) HealthStatus {
	return HealthStatus{Check: check, Status: StatusDegraded, Message: message, Details: details}
}

// NewUnhealthyStatus creates an unhealthy status for check.
func NewUnhealthyStatus(check, message string, details map[string]any) HealthStatus {
	return HealthStatus{Check: check, Status: StatusUnhealthy, Message: message, Details: details}
}

// Worst returns the most severe status among statuses. An unrecognized
// Status counts as, and is reported as, StatusUnhealthy. An empty input is
// healthy.
func Worst(statuses ...HealthStatus) HealthStatus {
	worst := HealthStatus{Check: "overall", Status: StatusHealthy}
	for _, s := range statuses {
		if severity(s.Status) > severity(worst.Status) {
			worst = s
		}
	}
	if severity(worst.Status) == severity(StatusUnhealthy) {
		worst.Status = StatusUnhealthy
	}
	return worst
}

func severity(status string) int {
	switch status {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}
