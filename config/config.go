package config

import (
    "os"
    "strconv"
    "time"
)

type contextKey string

// UserIDKey — ключ контекста для ID охранника, извлечённого из JWT.
const UserIDKey contextKey = "user_id"

// Config хранит все конфигурации приложения
type Config struct {
    DatabaseDSN      string
    JwtSecret        string
    ServerPort       string
    TelegramBotToken string
    TelegramChatID   string

    // Параметры смены
    ShiftDuration     time.Duration // номинальная длительность смены
    OvertimeIncrement time.Duration // фиксированная добавка за сверхурочные

    // Симулятор детекции транспорта
    DetectionInterval time.Duration
}

// NewConfig создает и возвращает новый экземпляр Config
func NewConfig() *Config {
    dsn := os.Getenv("DATABASE_DSN")
    if dsn == "" {
        dsn = "./guard.db"
    }

    jwtSecret := os.Getenv("JWT_SECRET")
    if jwtSecret == "" {
        jwtSecret = "dev-only-secret-change-me" // Измените в продакшене!
    }

    port := os.Getenv("SERVER_PORT")
    if port == "" {
        port = "6067"
    }

    return &Config{
        DatabaseDSN:      dsn,
        JwtSecret:        jwtSecret,
        ServerPort:       port,
        TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
        TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),

        ShiftDuration:     time.Duration(getEnvInt("SHIFT_DURATION_HOURS", 8)) * time.Hour,
        OvertimeIncrement: 2 * time.Hour,

        DetectionInterval: time.Duration(getEnvInt("DETECTION_INTERVAL_SEC", 45)) * time.Second,
    }
}

func getEnv(key, fallback string) string {
    if value, exists := os.LookupEnv(key); exists {
        return value
    }
    return fallback
}

func getEnvInt(key string, fallback int) int {
    if value, exists := os.LookupEnv(key); exists {
        if v, err := strconv.Atoi(value); err == nil {
            return v
        }
    }
    return fallback
}
