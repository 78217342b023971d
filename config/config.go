package config

import (
	"log"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBURL      string `env:"DB_URL,required"`
	JWTSecret  string `env:"JWT_SECRET,required"`
	AppURL     string `env:"APP_URL" envDefault:"http://localhost:5173"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	Stripe Stripe `envPrefix:"STRIPE_"`
	Google Google `envPrefix:"GOOGLE_"`
	SMTP   SMTP   `envPrefix:"SMTP_"`
}

type Stripe struct {
	SecretKey     string `env:"SECRET_KEY,required"`
	WebhookSecret string `env:"WEBHOOK_SECRET,required"`
}

type Google struct {
	ClientID         string `env:"CLIENT_ID"`
	ClientSecret     string `env:"CLIENT_SECRET"`
	RedirectURL      string `env:"REDIRECT_URL"`
	FrontendRedirect string `env:"FRONTEND_REDIRECT"`
}

type SMTP struct {
	From     string `env:"FROM"`
	Password string `env:"PASSWORD"`
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"587"`
}

// Load reads .env (if present) and parses the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
	return cfg
}
