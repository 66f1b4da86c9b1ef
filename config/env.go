package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDBDriver   = "mongo"
	defaultDBHost     = "cluster0.nvyyp05.mongodb.net"
	defaultDBName     = "copshop"
	defaultDBMaxPool  = "50"
	defaultJWTSecret  = "change-me-in-production"
	defaultPort       = "5000"
	defaultAppEnv     = "local"
	defaultRedisAddr  = "localhost:6379"
	defaultCacheTTL   = 5 * time.Minute
	defaultRateLimit  = 200
	defaultBodyBytes  = 4 << 20
	defaultCORSOrigin = "*"
)

// keys read from the process environment on top of the files.
var envKeys = []string{
	"DB_USER", "DB_PASS", "DB_HOST", "DB_NAME", "DB_DRIVER", "DB_MAX_POOL", "DB_TRANSACTIONS",
	"MONGO_URI", "ACCESS_TOKEN", "STRIPE_SECRET_KEY", "PORT", "APP_ENV",
	"CACHE_DRIVER", "REDIS_ADDR", "REDIS_PASSWORD", "CATEGORY_CACHE_TTL",
	"LOG_TO_MONGO", "RATE_LIMIT", "MAX_BODY_BYTES", "CORS_ORIGINS",
}

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json, then .env, then the process environment.
// Later sources win. It is safe to call repeatedly.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"DB_DRIVER":       defaultDBDriver,
		"DB_HOST":         defaultDBHost,
		"DB_NAME":         defaultDBName,
		"DB_MAX_POOL":     defaultDBMaxPool,
		"DB_TRANSACTIONS": "true",
		"ACCESS_TOKEN":    defaultJWTSecret,
		"PORT":            defaultPort,
		"APP_ENV":         defaultAppEnv,
		"CACHE_DRIVER":    "memory",
		"REDIS_ADDR":      defaultRedisAddr,
		"LOG_TO_MONGO":    "false",
		"CORS_ORIGINS":    defaultCORSOrigin,
	}
}

// ── Store ────────────────────────────────────────────────────────────────────

func DatabaseDriver() string {
	_ = Load()

	driver := strings.ToLower(get("DB_DRIVER", defaultDBDriver))
	switch driver {
	case "mongo", "memory":
		return driver
	default:
		return defaultDBDriver
	}
}

// MongoURI returns MONGO_URI when set, otherwise the Atlas SRV URI built
// from DB_USER, DB_PASS and DB_HOST.
func MongoURI() string {
	_ = Load()

	if override := get("MONGO_URI", ""); override != "" {
		return override
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(get("DB_USER", ""), get("DB_PASS", "")),
		Host:     get("DB_HOST", defaultDBHost),
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func DatabaseName() string { _ = Load(); return get("DB_NAME", defaultDBName) }

func DatabaseMaxPool() uint64 {
	_ = Load()
	n, err := strconv.ParseUint(get("DB_MAX_POOL", defaultDBMaxPool), 10, 64)
	if err != nil || n == 0 {
		return 50
	}
	return n
}

func DatabaseTransactions() bool { _ = Load(); return boolValue("DB_TRANSACTIONS", true) }

// ── Auth / payment ──────────────────────────────────────────────────────────

func JWTSecret() string { _ = Load(); return get("ACCESS_TOKEN", defaultJWTSecret) }

func StripeSecretKey() string { _ = Load(); return get("STRIPE_SECRET_KEY", "") }

// ── HTTP ────────────────────────────────────────────────────────────────────

func AppPort() string { _ = Load(); return get("PORT", defaultPort) }

func AppEnv() string { _ = Load(); return get("APP_ENV", defaultAppEnv) }

func RateLimit() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT", ""))
	if err != nil || n <= 0 {
		return defaultRateLimit
	}
	return n
}

func MaxBodyBytes() int64 {
	_ = Load()
	n, err := strconv.ParseInt(get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultBodyBytes
	}
	return n
}

func CORSOrigins() []string {
	_ = Load()
	var origins []string
	for _, o := range strings.Split(get("CORS_ORIGINS", defaultCORSOrigin), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// ── Cache / logging ─────────────────────────────────────────────────────────

func CacheDriver() string {
	_ = Load()
	if strings.EqualFold(get("CACHE_DRIVER", "memory"), "redis") {
		return "redis"
	}
	return "memory"
}

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

func CategoryCacheTTL() time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get("CATEGORY_CACHE_TTL", ""))
	if err != nil || d < 0 {
		return defaultCacheTTL
	}
	return d
}

func LogToMongo() bool { _ = Load(); return boolValue("LOG_TO_MONGO", false) }

// ── Loading ─────────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mergeEnviron(loaded)

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	parsed, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range parsed {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}
	return nil
}

func mergeEnviron(out map[string]string) {
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			out[key] = strings.TrimSpace(v)
		}
	}
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

func boolValue(key string, fallback bool) bool {
	b, err := strconv.ParseBool(get(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a single key at runtime. Intended for tests and CLI flags.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}
