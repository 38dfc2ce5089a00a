package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/viper"
)

// DBConfig holds database configuration
type DBConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	Name             string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	AutoMigrate      bool
	StatementTimeout time.Duration
}

// GetConfig returns database configuration with defaults
func GetConfig() *DBConfig {
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.name", "cashbook")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", time.Minute*5)
	viper.SetDefault("database.auto_migrate", true)
	viper.SetDefault("database.statement_timeout", 30*time.Second)

	return &DBConfig{
		Host:             viper.GetString("database.host"),
		Port:             viper.GetString("database.port"),
		User:             viper.GetString("database.user"),
		Password:         viper.GetString("database.password"),
		Name:             viper.GetString("database.name"),
		SSLMode:          viper.GetString("database.ssl_mode"),
		MaxOpenConns:     viper.GetInt("database.max_open_conns"),
		MaxIdleConns:     viper.GetInt("database.max_idle_conns"),
		ConnMaxLifetime:  viper.GetDuration("database.conn_max_lifetime"),
		AutoMigrate:      viper.GetBool("database.auto_migrate"),
		StatementTimeout: viper.GetDuration("database.statement_timeout"),
	}
}

// DSN renders the lib/pq connection URL. Credentials are escaped.
func (c *DBConfig) DSN() string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if c.StatementTimeout > 0 {
		q.Set("statement_timeout", fmt.Sprint(c.StatementTimeout.Milliseconds()))
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// InitDB opens the pool, checks connectivity and applies migrations when enabled.
func InitDB(ctx context.Context, config *DBConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	log.Println("Database connection established")

	if config.AutoMigrate {
		if err := Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// InitDatabase initializes database with error handling
func InitDatabase() *sql.DB {
	db, err := InitDB(context.Background(), GetConfig())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	return db
}
