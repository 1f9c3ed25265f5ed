package database

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the MySQL connection with pooling and retry. The DSN is built
// from DB_* env vars unless DB_DSN overrides it entirely.
func Connect() (*gorm.DB, error) {
	if DB != nil {
		return DB, nil
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		host := getenv("DB_HOST", "127.0.0.1")
		port := getenv("DB_PORT", "3306")
		user := getenv("DB_USER", "root")
		pass := getenv("DB_PASS", "")
		name := getenv("DB_NAME", "somoo")
		params := getenv("DB_PARAMS", "charset=utf8mb4&parseTime=True&loc=Local")

		if !strings.Contains(params, "tls=") && getenv("DB_TLS", "false") == "true" {
			if getenv("DB_TLS_CA_PATH", "") != "" {
				if err := registerCustomTLS(); err != nil {
					return nil, err
				}
				params += "&tls=custom"
			} else {
				params += "&tls=true"
			}
		}
		if !strings.Contains(params, "timeout=") {
			params += "&timeout=10s&readTimeout=10s&writeTimeout=10s"
		}

		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, name, params)
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if strings.ToLower(getenv("ENV", "development")) == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	maxRetries := atoi(getenv("DB_CONNECT_RETRIES", "5"))
	var db *gorm.DB
	var err error
	backoff := time.Second
	for attempt := 0; attempt < maxRetries; attempt++ {
		db, err = gorm.Open(gormmysql.Open(dsn), &gorm.Config{Logger: gormLogger})
		if err == nil {
			break
		}
		log.Printf("[database] connect attempt %d failed: %v", attempt+1, err)
		time.Sleep(backoff)
		backoff *= 2
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(atoi(getenv("DB_MAX_OPEN_CONNS", "25")))
	sqlDB.SetMaxIdleConns(atoi(getenv("DB_MAX_IDLE_CONNS", "25")))
	sqlDB.SetConnMaxLifetime(time.Duration(atoi(getenv("DB_CONN_MAX_LIFETIME", "3600"))) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	DB = db
	return DB, nil
}

// registerCustomTLS registers a named TLS config with the mysql driver so the
// DSN can reference it via tls=custom.
func registerCustomTLS() error {
	caPath := os.Getenv("DB_TLS_CA_PATH")
	caCert, err := os.ReadFile(caPath)
	if err != nil {
		return fmt.Errorf("failed reading DB TLS CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return errors.New("failed to append CA certs")
	}
	return mysqldriver.RegisterTLSConfig("custom", &tls.Config{RootCAs: pool})
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	if v <= 0 {
		return 1
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}
