package config

import (
	"log/slog"
	"os"
	"strconv"
)

func Load() App {
	cfg := App{
		Port:         getenv("APP_PORT", "8080"),
		DatabasePath: getenv("DATABASE_PATH", "library.db"),
		JWTSecret:    getenv("JWT_SECRET", "local_dev_secret"),
		// Default admin credentials exist only so a fresh checkout boots.
		// Set ADMIN_PASSWORD for anything beyond local dev.
		AdminPassword: getenv("ADMIN_PASSWORD", "12345"),
		BotToken:      os.Getenv("BOT_TOKEN"),
		BotChatID:     getenvInt64("BOT_CHAT_ID"),
		Env:           getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt64(k string) int64 {
	v := os.Getenv(k)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("invalid integer env, ignoring", "key", k, "value", v)
		return 0
	}
	return n
}
