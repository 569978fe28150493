package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	Store  StoreConfig
	Mongo  MongoConfig
	AI     AIConfig
	Upload UploadConfig
	Web    WebConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsDevelopment indica el modo de bajo riesgo: la extracción IA devuelve datos simulados.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPConfig configuración del servidor HTTP de la API.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Drivers de almacenamiento soportados.
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// StoreConfig selecciona el backend de persistencia.
type StoreConfig struct {
	Driver string // mongo | memory
}

// MongoConfig configuración de MongoDB + GridFS.
type MongoConfig struct {
	URI                string
	Database           string
	InvoicesCollection string
	FilesBucket        string
}

// AIConfig claves y modelos de los proveedores de extracción.
// Una clave vacía deja al proveedor en modo simulado.
type AIConfig struct {
	GeminiAPIKey    string
	GeminiModel     string
	GroqAPIKey      string
	GroqModel       string
	GroqBaseURL     string
	AnthropicAPIKey string
	AnthropicModel  string
}

// UploadConfig límites de carga de archivos.
type UploadConfig struct {
	MaxBytes int64
}

// WebConfig configuración del cliente web (cmd/web).
type WebConfig struct {
	Host string
	Port int
	// APIURL base usada por el servidor web para llamar a la API.
	APIURL string
	// PublicAPIURL base visible desde el navegador (vista previa del PDF).
	PublicAPIURL string
}

// Addr devuelve la dirección de escucha del cliente web.
func (c WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultMaxUploadBytes 25 MiB.
const DefaultMaxUploadBytes int64 = 25 * 1024 * 1024

const defaultMongoURI = "mongodb://localhost:27017/invoice-manager"

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, PORT, MONGODB_URI, GEMINI_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	mongoURI := getString(v, "MONGODB_URI", defaultMongoURI)
	apiURL := strings.TrimRight(getString(v, "API_URL", "http://localhost:3001"), "/")

	cfg := &Config{
		App: AppConfig{
			// NODE_ENV se acepta como alias de APP_ENV.
			Env:      getString(v, "APP_ENV", getString(v, "NODE_ENV", "development")),
			Name:     getString(v, "APP_NAME", "invoice-manager"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "PORT", getInt(v, "HTTP_PORT", 3001)),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverMongo)),
		},
		Mongo: MongoConfig{
			URI:                mongoURI,
			Database:           getString(v, "MONGODB_DATABASE", databaseFromURI(mongoURI)),
			InvoicesCollection: "invoices",
			FilesBucket:        "pdfs",
		},
		AI: AIConfig{
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-pro"),
			GroqAPIKey:      getString(v, "GROQ_API_KEY", ""),
			GroqModel:       getString(v, "GROQ_MODEL", "mixtral-8x7b-32768"),
			GroqBaseURL:     getString(v, "GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
		},
		Upload: UploadConfig{
			MaxBytes: int64(getInt(v, "UPLOAD_MAX_BYTES", int(DefaultMaxUploadBytes))),
		},
		Web: WebConfig{
			Host:         getString(v, "WEB_HOST", "0.0.0.0"),
			Port:         getInt(v, "WEB_PORT", 3000),
			APIURL:       apiURL,
			PublicAPIURL: strings.TrimRight(getString(v, "NEXT_PUBLIC_API_URL", apiURL), "/"),
		},
	}

	if cfg.Store.Driver != StoreDriverMongo && cfg.Store.Driver != StoreDriverMemory {
		return nil, fmt.Errorf("config: STORE_DRIVER inválido %q (mongo|memory)", cfg.Store.Driver)
	}
	if cfg.Upload.MaxBytes <= 0 {
		cfg.Upload.MaxBytes = DefaultMaxUploadBytes
	}
	return cfg, nil
}

// databaseFromURI toma la base de datos del path de la URI (mongodb://host/db); si no hay, usa el default.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "invoice-manager"
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		return db
	}
	return "invoice-manager"
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			return s
		}
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
