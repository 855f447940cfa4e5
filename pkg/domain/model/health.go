package model

// HealthStatus represents the health check status
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	// LoaderAvailable reports whether the instaloader binary answered a
	// version query.
	LoaderAvailable bool `json:"loader_available"`
}
