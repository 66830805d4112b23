package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo .env).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, production
	Name string
}

// HTTPConfig configuración del servidor HTTP local. Por defecto escucha solo
// en loopback: la UI corre en el mismo dispositivo.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig almacenamiento local: directorio de datos y cuota asumida
// del dispositivo para estimar el uso.
type StorageConfig struct {
	DataDir    string
	LimitBytes int64
}

// DBPath ruta del archivo SQLite con el slot de estado.
func (c StorageConfig) DBPath() string {
	return filepath.Join(c.DataDir, "feriavalle.db")
}

// DefaultStorageLimit cuota asumida del dispositivo (aprox. el límite típico
// de almacenamiento local de un navegador: 5 MB).
const DefaultStorageLimit = 5 * 1024 * 1024

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, HTTP_HOST, HTTP_PORT, DATA_DIR, STORAGE_LIMIT_BYTES.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "feriavalle"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			DataDir:    getString(v, "DATA_DIR", defaultDataDir()),
			LimitBytes: getInt64(v, "STORAGE_LIMIT_BYTES", DefaultStorageLimit),
		},
	}

	return cfg, nil
}

// defaultDataDir directorio de datos por dispositivo (ej. ~/.config/feriavalle).
func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(base, "feriavalle")
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
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getInt64(v *viper.Viper, key string, def int64) int64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.ParseInt(v.GetString(key), 10, 64)
			return n
		default:
			return v.GetInt64(key)
		}
	}
	return def
}
