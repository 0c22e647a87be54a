package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends de store admitidos en STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendREST     = "rest"
	BackendMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Log      LogConfig
	DB       DBConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	Exchange ExchangeConfig
	Metrics  MetricsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel de log: trace, debug, info, warn, error.
type LogConfig struct {
	Level string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// DSN devuelve DATABASE_URL si está definido; si no, lo arma con URL encoding de la contraseña.
func (c DBConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selección y parámetros del backend de persistencia.
type StoreConfig struct {
	Backend       string
	SQLitePath    string
	RestURL       string // ej. https://<proyecto>.supabase.co/rest/v1
	RestAPIKey    string
	RestJWTSecret string // solo para firmar claves con `wms token`
	RetryCount    int
	RetryWait     time.Duration
	Timeout       time.Duration
}

// ExchangeConfig importación, reportes y su programación.
type ExchangeConfig struct {
	StrictImport bool
	ReportsDir   string
	ReportCron   string // vacío = sin reporte programado
}

// MetricsConfig exposición de /metrics.
type MetricsConfig struct {
	Enabled bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "wareflow"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "wareflow"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(getString(v, "STORE_BACKEND", BackendPostgres)),
			SQLitePath:    getString(v, "STORE_SQLITE_PATH", "./data/wareflow.db"),
			RestURL:       getString(v, "STORE_REST_URL", ""),
			RestAPIKey:    getString(v, "STORE_REST_API_KEY", ""),
			RestJWTSecret: getString(v, "STORE_REST_JWT_SECRET", ""),
			RetryCount:    getInt(v, "STORE_RETRY_COUNT", 3),
			RetryWait:     time.Duration(getInt(v, "STORE_RETRY_WAIT_MS", 1000)) * time.Millisecond,
			Timeout:       time.Duration(getInt(v, "STORE_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Exchange: ExchangeConfig{
			StrictImport: getBool(v, "EXCHANGE_STRICT_IMPORT", false),
			ReportsDir:   getString(v, "EXCHANGE_REPORTS_DIR", "./reports"),
			ReportCron:   getString(v, "EXCHANGE_REPORT_CRON", ""),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendPostgres, BackendSQLite, BackendMemory:
	case BackendREST:
		if c.Store.RestURL == "" || c.Store.RestAPIKey == "" {
			return fmt.Errorf("config: STORE_REST_URL y STORE_REST_API_KEY son obligatorios con STORE_BACKEND=rest")
		}
	default:
		return fmt.Errorf("config: STORE_BACKEND desconocido %q", c.Store.Backend)
	}
	if c.Store.RetryCount < 0 {
		return fmt.Errorf("config: STORE_RETRY_COUNT no puede ser negativo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return b
	}
	return v.GetBool(key)
}
