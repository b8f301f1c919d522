package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type TMDB struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	// Requests per second towards TMDB.
	RateLimit float64
	Burst     int
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// Backend is where the deck gateway sends discover, swipe and stats calls.
type Backend struct {
	BaseURL string
	Timeout time.Duration
}

type Deck struct {
	Port              string
	UserID            string
	PageSize          int
	PrefetchThreshold int
	SwipeThreshold    float64
}

type Warmer struct {
	Spec string
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	TMDB     TMDB
	Backend  Backend
	Deck     Deck
	Warmer   Warmer
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		TMDB:     *newTMDB(),
		Backend:  *newBackend(),
		Deck:     *newDeck(),
		Warmer:   *newWarmer(),
	}

	log.Printf("%s loaded", logtag)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getsecret("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getsecret("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "moviematch"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newTMDB() *TMDB {
	return &TMDB{
		APIKey:       getsecret("TMDB_API_KEY", ""),
		BaseURL:      getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		ImageBaseURL: getenv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/"),
		RateLimit:    getfloat("TMDB_RATE_LIMIT", 20),
		Burst:        getint("TMDB_BURST", 10),
		Timeout:      getduration("TMDB_TIMEOUT", 10*time.Second),
		CacheTTL:     getduration("TMDB_CACHE_TTL", 30*time.Minute),
	}
}

func newBackend() *Backend {
	return &Backend{
		BaseURL: getenv("BACKEND_URL", "http://localhost:8080/api"),
		Timeout: getduration("BACKEND_TIMEOUT", 15*time.Second),
	}
}

func newDeck() *Deck {
	return &Deck{
		Port:              getenv("DECK_PORT", "8081"),
		UserID:            getenv("DECK_USER_ID", "default_user"),
		PageSize:          getint("DECK_PAGE_SIZE", 20),
		PrefetchThreshold: getint("DECK_PREFETCH_THRESHOLD", 3),
		SwipeThreshold:    getfloat("DECK_SWIPE_THRESHOLD", 100),
	}
}

func newWarmer() *Warmer {
	return &Warmer{
		Spec: getenv("WARMER_SPEC", "@every 6h"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getsecret(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value\n", logtag, key)
		return defaultValue
	}
	fmt.Printf("%s %s is set\n", logtag, key)
	return val
}

func getint(key string, defaultValue int) int {
	raw := getenv(key, strconv.Itoa(defaultValue))
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s %s must be an integer : %v", logtag, key, err)
	}
	return v
}

func getfloat(key string, defaultValue float64) float64 {
	raw := getenv(key, strconv.FormatFloat(defaultValue, 'f', -1, 64))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("%s %s must be a number : %v", logtag, key, err)
	}
	return v
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	raw := getenv(key, defaultValue.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s %s must be a duration : %v", logtag, key, err)
	}
	return v
}
