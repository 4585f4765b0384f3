package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// AuthRatePerMin caps login and registration attempts per client IP.
	AuthRatePerMin int `yaml:"auth_rate_per_min" env:"SERVER_AUTH_RATE_PER_MIN" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"potholes"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
	BcryptCost     int           `yaml:"bcrypt_cost"      env:"AUTH_BCRYPT_COST"      env-default:"10"`
}

// StorageConfig holds photo blob storage (Google Cloud Storage) settings.
type StorageConfig struct {
	Bucket string `yaml:"bucket" env:"STORAGE_BUCKET" env-required:"true"`
	// CredentialsJSON carries an explicit service-account key. When empty,
	// Application Default Credentials are used.
	CredentialsJSON string `yaml:"credentials_json" env:"STORAGE_CREDENTIALS_JSON"`
	// PublicBaseURL is the prefix of the public object links returned to
	// clients, e.g. "https://storage.googleapis.com/<bucket>".
	PublicBaseURL string `yaml:"public_base_url" env:"STORAGE_PUBLIC_BASE_URL"`
}

// CatalogConfig holds the street/neighborhood reference spreadsheet settings.
type CatalogConfig struct {
	SpreadsheetID      string        `yaml:"spreadsheet_id"       env:"CATALOG_SPREADSHEET_ID"`
	StreetsTab         string        `yaml:"streets_tab"          env:"CATALOG_STREETS_TAB"          env-default:"STREETS"`
	StreetColumn       string        `yaml:"street_column"        env:"CATALOG_STREET_COLUMN"        env-default:"Street"`
	MunicipalityColumn string        `yaml:"municipality_column"  env:"CATALOG_MUNICIPALITY_COLUMN"  env-default:"Municipality"`
	MunicipalityFilter string        `yaml:"municipality_filter"  env:"CATALOG_MUNICIPALITY_FILTER"`
	NeighborhoodsTab   string        `yaml:"neighborhoods_tab"    env:"CATALOG_NEIGHBORHOODS_TAB"    env-default:"NEIGHBORHOODS"`
	NeighborhoodColumn string        `yaml:"neighborhood_column"  env:"CATALOG_NEIGHBORHOOD_COLUMN"  env-default:"Neighborhood"`
	StreetsTTL         time.Duration `yaml:"streets_ttl"          env:"CATALOG_STREETS_TTL"          env-default:"1h"`
	NeighborhoodsTTL   time.Duration `yaml:"neighborhoods_ttl"    env:"CATALOG_NEIGHBORHOODS_TTL"    env-default:"24h"`
	MaxStreetResults   int           `yaml:"max_street_results"   env:"CATALOG_MAX_STREET_RESULTS"   env-default:"10"`
}

// ReportConfig holds the field-report domain settings.
type ReportConfig struct {
	// Timezone is the municipal timezone used for the same-day edit window.
	Timezone         string `yaml:"timezone"           env:"REPORT_TIMEZONE"           env-default:"America/Sao_Paulo"`
	IdentifierPrefix string `yaml:"identifier_prefix"  env:"REPORT_IDENTIFIER_PREFIX"  env-default:"REPAIR"`
	MaxRecords       int    `yaml:"max_records"        env:"REPORT_MAX_RECORDS"        env-default:"50"`
	MaxPhotos        int    `yaml:"max_photos"         env:"REPORT_MAX_PHOTOS"         env-default:"20"`
	MaxPhotoSizeMB   int    `yaml:"max_photo_size_mb"  env:"REPORT_MAX_PHOTO_SIZE_MB"  env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
