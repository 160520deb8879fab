package config

import "time"

// Config is the root server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Store      StoreConfig      `yaml:"store"`
	Game       GameConfig       `yaml:"game"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `yaml:"port"            env:"PORT"            env-default:"5175"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"10s"`
	ClientOrigin   string        `yaml:"client_origin"   env:"CLIENT_ORIGIN"   env-default:"http://localhost:5173"`
}

// AuthConfig holds table-token settings.
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"  env:"JWT_SECRET"  env-default:"dev_secret_change_me"`
	TokenTTL   time.Duration `yaml:"token_ttl"   env:"TOKEN_TTL"   env-default:"72h"`
	CookieName string        `yaml:"cookie_name" env:"COOKIE_NAME" env-default:"table"`
}

// DictionaryConfig holds definition lookup settings.
type DictionaryConfig struct {
	Enabled   bool          `yaml:"enabled"    env:"DICTIONARY_ENABLED"    env-default:"true"`
	BaseURL   string        `yaml:"base_url"   env:"DICTIONARY_BASE_URL"   env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout   time.Duration `yaml:"timeout"    env:"DICTIONARY_TIMEOUT"    env-default:"3s"`
	CacheSize int           `yaml:"cache_size" env:"DICTIONARY_CACHE_SIZE" env-default:"1024"`
}

// StoreConfig selects persistence. An empty DatabasePath keeps games in memory.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path" env:"DATABASE_PATH"`
}

// GameConfig holds gameplay policy.
type GameConfig struct {
	RequireValidWords bool `yaml:"require_valid_words" env:"REQUIRE_VALID_WORDS" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
