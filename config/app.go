package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DatabasePath  string `env:"DATABASE_PATH" default:"library.db"`
	JWTSecret     string `env:"JWT_SECRET" default:"local_dev_secret"`
	AdminPassword string `env:"ADMIN_PASSWORD" default:"12345"`
	BotToken      string `env:"BOT_TOKEN"`
	BotChatID     int64  `env:"BOT_CHAT_ID"`
	Env           string `env:"APP_ENV" default:"dev"`
}
