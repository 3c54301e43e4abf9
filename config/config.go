package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	DBHost  string `json:"dbhost"`
	DBPort  uint16 `json:"dbport"`
	DBName  string `json:"dbname"`
	DBUSER  string `json:"dbuser"`
	DBPass  string `json:"dbpass"`

	JWTSecret   string `json:"-"`
	JWTIssuer   string `json:"jwt_issuer"`
	JWTAudience string `json:"jwt_audience"`

	// ClinicTimezone is the IANA zone used to interpret schedule wall-clock times.
	ClinicTimezone string `json:"clinic_timezone"`

	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	AMQPURL      string `json:"-"`
	AMQPExchange string `json:"amqp_exchange"`

	GeoIPDBPath string `json:"geoip_db_path"`

	RateLimit  int           `json:"rate_limit"`
	RateWindow time.Duration `json:"rate_window"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is not fatal; the process environment is used as-is.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && os.Getenv("APPENV") != "test" {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", "3306"), 10, 16)
		rateLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT", "20"))
		rateWindow, err := time.ParseDuration(getEnv("RATE_WINDOW", "1m"))
		if err != nil {
			rateWindow = time.Minute
		}

		config = &Config{
			AppName:        getEnv("APPNAME", "clinic-booking"),
			AppEnv:         os.Getenv("APPENV"),
			AppPort:        uint16(appPort),
			GinMode:        getEnv("GINMODE", "debug"),
			DBHost:         os.Getenv("DBHOST"),
			DBPort:         uint16(dbPort),
			DBName:         os.Getenv("DBNAME"),
			DBUSER:         os.Getenv("DBUSER"),
			DBPass:         os.Getenv("DBPASS"),
			JWTSecret:      os.Getenv("JWTSECRET"),
			JWTIssuer:      os.Getenv("JWT_ISSUER"),
			JWTAudience:    os.Getenv("JWT_AUDIENCE"),
			ClinicTimezone: getEnv("CLINIC_TIMEZONE", "UTC"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFile:        os.Getenv("LOG_FILE"),
			AMQPURL:        os.Getenv("AMQP_URL"),
			AMQPExchange:   getEnv("AMQP_EXCHANGE", "clinic.events"),
			GeoIPDBPath:    os.Getenv("GEOIP_DB_PATH"),
			RateLimit:      rateLimit,
			RateWindow:     rateWindow,
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// LoadLocation resolves ClinicTimezone. An empty value means UTC.
func (c *Config) LoadLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TIMEZONE %q: %w", c.ClinicTimezone, err)
	}
	return loc, nil
}

// ConnectMySQL establishes a connection to a MySQL database using the configuration values.
// When APPENV=test an in-memory SQLite database is returned instead.
func ConnectMySQL() (*gorm.DB, error) {
	cfg := LoadConfig()
	gormCfg := &gorm.Config{TranslateError: true}

	if cfg.AppEnv == "test" || os.Getenv("APPENV") == "test" {
		dsn := fmt.Sprintf("file:clinic_%d?mode=memory&cache=shared", time.Now().UnixNano())
		db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite serializes writers; a single connection keeps the in-memory database alive.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}
	return db, nil
}
