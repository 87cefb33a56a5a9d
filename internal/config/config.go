package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuracion del servicio. Todo lo que el motor
// necesita (clave del LLM, directiva de persona, timeouts) se parsea aca y se
// pasa explicito en la construccion: ninguna logica de decision lee el
// ambiente.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	APIKey   string `env:"SUBMISSION_API_KEY"`

	DatabaseURL string `env:"DATABASE_URL"`

	LLMAPIKey         string `env:"LLM_API_KEY"`
	LLMBaseURL        string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel          string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeoutSeconds int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"10"`
	PersonaDirective  string `env:"PERSONA_DIRECTIVE"`

	RedisAddr             string `env:"REDIS_ADDR"`
	RedisPassword         string `env:"REDIS_PASSWORD"`
	RedisDB               int    `env:"REDIS_DB" envDefault:"0"`
	DelegateRateWindowS   int    `env:"DELEGATE_RATE_WINDOW_SECONDS" envDefault:"60"`
	DelegateRateMax       int    `env:"DELEGATE_RATE_MAX" envDefault:"6"`
	DelegateRateGlobalMax int    `env:"DELEGATE_RATE_GLOBAL_MAX" envDefault:"120"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`
	AlertTo      string `env:"ALERT_TO"`
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
