package config

type Config struct {
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	SessionSecret   string
	Environment     string
	Port            string
	BaseURL         string
	AllowedOrigins  []string
	PromptRateLimit string
	OTELEndpoint    string
	OTELSampleRate  float64
}

// settings for the terminal client
type ClientConfig struct {
	APIEndpoint string
	Token       string
	SessionID   string
}
