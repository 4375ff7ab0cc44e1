package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrSecretMissing is returned when no JWT signing secret is configured.
// The gateway refuses to start without one: every socket handshake depends
// on it, so this is a process-level failure, not a per-request one.
var ErrSecretMissing = errors.New("config: auth.jwtSecret is not set")

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Transport TransportConfig
	Directory DirectoryConfig
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

type TransportConfig struct {
	// SendBuffer is the per-connection outbound frame buffer.
	SendBuffer int `mapstructure:"sendBuffer"`
	// SendTimeout bounds how long a delivery waits on a saturated buffer
	// before the frame is dropped. Delivery is fire-and-forget.
	SendTimeout  time.Duration `mapstructure:"sendTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
}

type DirectoryConfig struct {
	// Path of the sqlite user directory used for display-name lookups.
	Path string `mapstructure:"path"`
}

// Load reads configuration from an optional YAML file and environment
// variables. A missing file is fine; a missing JWT secret is not.
func Load(fileName string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.listen", ":5001")
	v.SetDefault("transport.sendBuffer", 256)
	v.SetDefault("transport.sendTimeout", "500ms")
	v.SetDefault("transport.writeTimeout", "10s")
	v.SetDefault("directory.path", "file:users.db?mode=memory&cache=shared")

	if fileName == "" {
		fileName = "config"
	}
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BAYANIHAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The deployment this replaces configured the secret as JWT_SECRET.
	_ = v.BindEnv("auth.jwtSecret", "BAYANIHAN_AUTH_JWTSECRET", "JWT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, ErrSecretMissing
	}

	return &cfg, nil
}
