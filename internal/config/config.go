package config

type Config struct {
	Environment  Environment
	Log          Log
	HTTP         HTTPServer
	BaseURL      string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"packmarket.db"`

	Payment Payment `envPrefix:"PAYMENT_"`
}

type Payment struct {
	BaseApiURL     string `env:"BASE_API_URL"`
	AccessToken    string `env:"ACCESS_TOKEN"`
	TimeoutSeconds int    `env:"TIMEOUT_SECONDS" envDefault:"30"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
