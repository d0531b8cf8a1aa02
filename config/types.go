package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int      `yaml:"port" validate:"gte=0,lte=65535"` // 0 selects DefaultPort
	AllowedOrigins  []string `yaml:"allowedOrigins" validate:"omitempty,dive,required"`
	ShutdownTimeout int      `yaml:"shutdownTimeoutSeconds" validate:"gte=0"`
}

// DataConfig points at the static inputs loaded once at startup
type DataConfig struct {
	OSMFile   string `yaml:"osmFile" validate:"required"`
	StopsFile string `yaml:"stopsFile" validate:"required"`
}

// PredictionsConfig contains the realtime feed configuration.
// An empty TripUpdatesURL disables arrivals; an empty VehiclePositionsURL
// disables live bus positions.
type PredictionsConfig struct {
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
	CacheTTLSeconds     int    `yaml:"cacheTTLSeconds" validate:"gte=0"`
	MaxPerStop          int    `yaml:"maxPerStop" validate:"gte=0"`
}

// SearchConfig contains building search defaults
type SearchConfig struct {
	CaseSensitive bool `yaml:"caseSensitive"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server      ServerConfig      `yaml:"server" validate:"required"`
	Data        DataConfig        `yaml:"data" validate:"required"`
	Predictions PredictionsConfig `yaml:"predictions"`
	Search      SearchConfig      `yaml:"search"`
}
