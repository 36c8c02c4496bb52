package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendMySQL  = "mysql"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendGridFS = "gridfs"
	BackendMinio  = "minio"
)

type Config struct {
	HTTPAddr  string `envconfig:"HTTP_ADDR" default:":8082"`
	StaticDir string `envconfig:"STATIC_DIR" default:"./static"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	JWTSecret  string        `envconfig:"JWT_SECRET"`
	JWTTTL     time.Duration `envconfig:"JWT_TTL" default:"168h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"12"`

	MongoURI    string `envconfig:"MONGO_URI" required:"true"`
	MongoDBName string `envconfig:"MONGO_DB_NAME" default:"products-catalog"`

	SessionBackend string `envconfig:"SESSION_BACKEND" default:"mysql"`
	MySQLDSN       string `envconfig:"MYSQL_DSN"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	RateLimitBackend string        `envconfig:"RATE_LIMIT_BACKEND" default:"memory"`
	LoginMaxAttempts int           `envconfig:"LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginWindow      time.Duration `envconfig:"LOGIN_WINDOW" default:"15m"`

	BlobBackend    string `envconfig:"BLOB_BACKEND" default:"gridfs"`
	GridFSBucket   string `envconfig:"GRIDFS_BUCKET" default:"images"`
	S3Endpoint     string `envconfig:"S3_ENDPOINT"`
	S3AccessKey    string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey    string `envconfig:"S3_SECRET_KEY"`
	S3Bucket       string `envconfig:"S3_BUCKET"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`
}

// Load reads the env file named by START (".env" when unset) if it exists,
// then decodes the environment and validates it for the HTTP server.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCatalog is Load for tools that only talk to MongoDB. Backend settings
// are left unchecked until something asks for them.
func LoadCatalog() (*Config, error) {
	return load()
}

func load() (*Config, error) {
	file := os.Getenv("START")
	if file == "" {
		file = ".env"
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if err := c.ValidateSessions(); err != nil {
		return err
	}

	switch c.RateLimitBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q", c.RateLimitBackend)
	}

	switch c.BlobBackend {
	case BackendGridFS:
	case BackendMinio:
		if c.S3Endpoint == "" || c.S3AccessKey == "" || c.S3SecretKey == "" || c.S3Bucket == "" {
			return errors.New("S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET are required when BLOB_BACKEND=minio")
		}
	default:
		return fmt.Errorf("unknown BLOB_BACKEND %q", c.BlobBackend)
	}

	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// ValidateSessions checks only the session store settings.
func (c *Config) ValidateSessions() error {
	switch c.SessionBackend {
	case BackendMySQL:
		if c.MySQLDSN == "" {
			return errors.New("MYSQL_DSN is required when SESSION_BACKEND=mysql")
		}
	case BackendRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}
