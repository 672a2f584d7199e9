package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	Session   SessionConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Uploads   UploadsConfig
	Scheduler SchedulerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env           string // development, staging, production
	Name          string
	LogLevel      string
	PublicBaseURL string // base de los enlaces de invitación (ej. https://erp.stellarmotion.io)
}

// IsDev indica si la app corre en modo desarrollo.
func (c AppConfig) IsDev() bool {
	return c.Env == "development"
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
	AutoMigrate bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string con la contraseña URL-encoded.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// SessionConfig firma y cookie de la sesión.
type SessionConfig struct {
	Secret       string
	Expiration   int // minutos
	Issuer       string
	CookieName   string
	CookieSecure bool
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins string
	LoginRateLimit int // intentos por minuto e IP
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig cola de trabajos. URL vacía = envío síncrono.
type RedisConfig struct {
	URL        string
	Workers    int
	EmailQueue string
}

// SMTPConfig servidor de correo saliente. Host vacío = correo deshabilitado (solo log).
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled indica si hay servidor SMTP configurado.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// UploadsConfig almacenamiento local de imágenes de soportes.
type UploadsConfig struct {
	Dir          string
	PublicPrefix string
	MaxBytes     int
	Placeholder  string
}

// SchedulerConfig expresiones cron (UTC) de los trabajos periódicos.
type SchedulerConfig struct {
	Enabled           bool
	ExpireInvitations string
	MarkOverdue       string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, SESSION_SECRET, etc.
func Load() (*Config, error) {
	// .env opcional; en producción las variables vienen del entorno.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:           getString(v, "APP_ENV", "development"),
			Name:          getString(v, "APP_NAME", "stellarmotion-erp"),
			LogLevel:      getString(v, "LOG_LEVEL", "info"),
			PublicBaseURL: strings.TrimRight(getString(v, "PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "stellarmotion"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		Session: SessionConfig{
			Secret:       getString(v, "SESSION_SECRET", ""),
			Expiration:   getInt(v, "SESSION_EXPIRATION_MINUTES", 60*24*7),
			Issuer:       getString(v, "SESSION_ISSUER", "stellarmotion-erp"),
			CookieName:   getString(v, "SESSION_COOKIE", "session"),
			CookieSecure: getBool(v, "SESSION_COOKIE_SECURE", false),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			AllowedOrigins: getString(v, "HTTP_ALLOWED_ORIGINS", "http://localhost:3000"),
			LoginRateLimit: getInt(v, "HTTP_LOGIN_RATE_LIMIT", 10),
		},
		Redis: RedisConfig{
			URL:        getString(v, "REDIS_URL", ""),
			Workers:    getInt(v, "WORKER_POOL_SIZE", 2),
			EmailQueue: getString(v, "EMAIL_QUEUE", "stellarmotion:jobs:email"),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", "no-reply@stellarmotion.io"),
		},
		Uploads: UploadsConfig{
			Dir:          getString(v, "UPLOADS_DIR", "./public/uploads"),
			PublicPrefix: getString(v, "UPLOADS_PUBLIC_PREFIX", "/uploads"),
			MaxBytes:     getInt(v, "UPLOADS_MAX_BYTES", 5*1024*1024),
			Placeholder:  getString(v, "UPLOADS_PLACEHOLDER", "/placeholder.svg"),
		},
		Scheduler: SchedulerConfig{
			Enabled:           getBool(v, "SCHEDULER_ENABLED", true),
			ExpireInvitations: getString(v, "CRON_EXPIRE_INVITATIONS", "*/15 * * * *"),
			MarkOverdue:       getString(v, "CRON_MARK_OVERDUE", "0 3 * * *"),
		},
	}

	if cfg.Session.Secret == "" && !cfg.App.IsDev() {
		return nil, fmt.Errorf("SESSION_SECRET es obligatorio fuera de development")
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = "dev-only-secret"
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
