// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const sessionSecretBytes = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr       string
	DBPath           string
	AppURL           string
	CatalogAPIURL    string
	CatalogAPIToken  string
	CategoryParentID string
	SessionSecret    []byte // nil when JEWELPANEL_SESSION_SECRET is unset.
	SessionTTL       time.Duration
	SignOutDelay     time.Duration

	AttachmentBucket string
	S3Endpoint       string
	S3Region         string
	S3UsePathStyle   bool
	S3AccessKey      string
	S3SecretKey      string
}

// UsesS3 reports whether staged attachments go to an S3 bucket rather than
// process memory.
func (c *Config) UsesS3() bool {
	return c.AttachmentBucket != ""
}

// SecureCookies reports whether cookies must carry the Secure attribute.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.AppURL, "https://")
}

// LoadEnvFile loads variables from a dotenv file without overriding variables
// already set in the environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// Load reads configuration from environment variables and returns a validated Config.
// JEWELPANEL_CATALOG_API_URL is required. JEWELPANEL_SESSION_SECRET, when set,
// must be 64 hex characters. Optional variables with defaults:
// JEWELPANEL_LISTEN_ADDR (127.0.0.1:8080), JEWELPANEL_DB_PATH (jewelpanel.db),
// JEWELPANEL_APP_URL (http://localhost:8080), JEWELPANEL_SESSION_TTL (12h),
// JEWELPANEL_SIGNOUT_DELAY (500ms).
func Load() (*Config, error) {
	catalogURL := strings.TrimSpace(os.Getenv("JEWELPANEL_CATALOG_API_URL"))
	if catalogURL == "" {
		return nil, errors.New("JEWELPANEL_CATALOG_API_URL is required")
	}
	if u, err := url.Parse(catalogURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("JEWELPANEL_CATALOG_API_URL must be an absolute URL, got %q", catalogURL)
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("JEWELPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "jewelpanel.db"
	if v, ok := os.LookupEnv("JEWELPANEL_DB_PATH"); ok {
		dbPath = v
	}

	appURL := "http://localhost:8080"
	if v, ok := os.LookupEnv("JEWELPANEL_APP_URL"); ok && v != "" {
		appURL = strings.TrimSuffix(v, "/")
	}

	sessionTTL, err := durationEnv("JEWELPANEL_SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	if sessionTTL <= 0 {
		return nil, fmt.Errorf("JEWELPANEL_SESSION_TTL must be positive, got %s", sessionTTL)
	}

	signOutDelay, err := durationEnv("JEWELPANEL_SIGNOUT_DELAY", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	var secret []byte
	if v, ok := os.LookupEnv("JEWELPANEL_SESSION_SECRET"); ok && v != "" {
		decoded, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("JEWELPANEL_SESSION_SECRET must be hex encoded: %w", err)
		}
		if len(decoded) != sessionSecretBytes {
			return nil, fmt.Errorf("JEWELPANEL_SESSION_SECRET must be %d bytes (%d hex chars), got %d bytes",
				sessionSecretBytes, sessionSecretBytes*2, len(decoded))
		}
		secret = decoded
	}

	pathStyle := false
	if v, ok := os.LookupEnv("JEWELPANEL_S3_USE_PATH_STYLE"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("JEWELPANEL_S3_USE_PATH_STYLE has invalid boolean %q: %w", v, err)
		}
		pathStyle = parsed
	}

	return &Config{
		ListenAddr:       listenAddr,
		DBPath:           dbPath,
		AppURL:           appURL,
		CatalogAPIURL:    catalogURL,
		CatalogAPIToken:  os.Getenv("JEWELPANEL_CATALOG_API_TOKEN"),
		CategoryParentID: os.Getenv("JEWELPANEL_CATEGORY_PARENT_ID"),
		SessionSecret:    secret,
		SessionTTL:       sessionTTL,
		SignOutDelay:     signOutDelay,
		AttachmentBucket: os.Getenv("JEWELPANEL_ATTACHMENT_BUCKET"),
		S3Endpoint:       os.Getenv("JEWELPANEL_S3_ENDPOINT"),
		S3Region:         os.Getenv("JEWELPANEL_AWS_REGION"),
		S3UsePathStyle:   pathStyle,
		S3AccessKey:      os.Getenv("JEWELPANEL_S3_ACCESS_KEY"),
		S3SecretKey:      os.Getenv("JEWELPANEL_S3_SECRET_KEY"),
	}, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", key, v, err)
	}
	return parsed, nil
}
