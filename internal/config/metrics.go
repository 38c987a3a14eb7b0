package config

// MetricsConfig controls the Prometheus endpoint and optional OTLP push.
type MetricsConfig struct {
	Enabled bool
	// Port serves /metrics; when it equals Config.Port the ops listener mounts it instead.
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// SharesPort reports whether metrics ride on the listener bound to port.
func (m MetricsConfig) SharesPort(port string) bool {
	return m.Port == "" || m.Port == port
}

func loadMetrics() MetricsConfig {
	m := MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
	if m.OtlpEndpoint != "" {
		m.Enabled = true
	}
	return m
}
