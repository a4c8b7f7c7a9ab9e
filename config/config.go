package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type Config struct {
	DB       DBConfig
	Mongo    MongoConfig
	Telegram TelegramConfig
	Admin    AdminConfig
	Storage  StorageConfig
	AMQP     AMQPConfig
	Lang     string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	User       string
	Password   string
}

type TelegramConfig struct {
	Token        string
	MessageToken string // token for sending new-order notifications to admin
	AdminChatID  int64
}

// AdminConfig holds the dashboard credential. PasswordHash (bcrypt) wins over Password when set.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

type StorageConfig struct {
	Driver string // memory | file | postgres | mongo
	Dir    string // directory for the file driver
	Key    string // slot name holding the serialized order queue
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	adminChatID, _ := strconv.ParseInt(getEnv("ADMIN_CHAT_ID", "0"), 10, 64)

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "cafe"),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DB", "cafe"),
			Collection: getEnv("MONGO_COLLECTION", "kv_store"),
			User:       getEnv("MONGO_USER", ""),
			Password:   getEnv("MONGO_PASSWORD", ""),
		},
		Telegram: TelegramConfig{
			Token:        getEnv("TOKEN", ""),
			MessageToken: getEnv("MESSAGE_TOKEN", ""),
			AdminChatID:  adminChatID,
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			Password:     getEnv("ADMIN_PASSWORD", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
			Dir:    getEnv("STORAGE_DIR", "data"),
			Key:    getEnv("STORAGE_KEY", "cafe_gandom_orders"),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "cafe_orders"),
		},
		Lang: getEnv("BOT_LANG", "fa"),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
