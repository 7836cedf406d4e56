package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	JWT      JWTConfig
	Log      LogConfig
	Redis    RedisConfig
	Console  ConsoleConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

// UpstreamConfig 后端微服务网关配置
type UpstreamConfig struct {
	GatewayURL string // API网关地址（property/request/owner/tenant/lease）
	PaymentURL string // 支付服务地址
	Timeout    int    // 请求超时（秒）
	RetryCount int    // 失败重试次数
}

type JWTConfig struct {
	SecretKey string // 验签密钥（令牌由远端认证服务签发）
}

type LogConfig struct {
	Level      string
	FilePath   string
	MaxSize    int    // MB
	MaxBackups int    // 保留的备份文件数
	MaxAge     int    // 保留天数
	Compress   bool   // 是否压缩
	Format     string // json 或 text
}

type RedisConfig struct {
	Host     string // Redis主机地址
	Port     int    // Redis端口
	Password string // Redis密码
	DB       int    // Redis数据库编号
	Prefix   string // 缓存键前缀
	Enabled  bool   // 是否启用上游缓存
}

// ConsoleConfig 控制台视图行为配置
type ConsoleConfig struct {
	RefreshCron     string // 活跃会话的后台刷新周期
	NotificationTTL int    // 通知展示时长（秒）
	SessionIdle     int    // 会话空闲回收时间（分钟）
	CacheTTL        int    // 上游缓存TTL（秒）
}

type CORSConfig struct {
	AllowOrigins     []string // 允许的源
	AllowMethods     []string // 允许的HTTP方法
	AllowHeaders     []string // 允许的请求头
	ExposeHeaders    []string // 暴露的响应头
	AllowCredentials bool     // 是否允许携带凭证
	MaxAge           int      // 预检请求缓存时间（小时）
}

// 全局配置实例和同步锁
var (
	globalConfig *Config
	once         sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		var err error
		globalConfig, err = LoadConfig()
		if err != nil {
			panic("Failed to load config: " + err.Error())
		}
	})
	return globalConfig
}

// 获取环境变量，如果不存在则使用默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// 获取环境变量转换为int
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// 获取环境变量转换为bool
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true"
	}
	return defaultValue
}

// 获取环境变量转换为字符串数组（逗号分隔）
func getEnvAsStringArray(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return defaultValue
}

func LoadConfig() (*Config, error) {
	// .env不存在时直接使用系统环境变量
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Mode: getEnv("SERVER_MODE", "debug"),
		},
		Upstream: UpstreamConfig{
			GatewayURL: getEnv("UPSTREAM_GATEWAY_URL", "http://localhost:9092"),
			PaymentURL: getEnv("UPSTREAM_PAYMENT_URL", "http://localhost:8083/pg"),
			Timeout:    getEnvAsInt("UPSTREAM_TIMEOUT", 30),
			RetryCount: getEnvAsInt("UPSTREAM_RETRY_COUNT", 0),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "default-secret-change-me"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/app.log"),
			MaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 7),
			MaxAge:     getEnvAsInt("LOG_MAX_AGE", 30),
			Compress:   getEnvAsBool("LOG_COMPRESS", true),
			Format:     getEnv("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "plmc:cache"),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		Console: ConsoleConfig{
			RefreshCron:     getEnv("CONSOLE_REFRESH_CRON", "@every 30s"),
			NotificationTTL: getEnvAsInt("CONSOLE_NOTIFICATION_TTL", 5),
			SessionIdle:     getEnvAsInt("CONSOLE_SESSION_IDLE", 30),
			CacheTTL:        getEnvAsInt("CONSOLE_CACHE_TTL", 15),
		},
		CORS: CORSConfig{
			AllowOrigins:     getEnvAsStringArray("CORS_ALLOW_ORIGINS", []string{"*"}),
			AllowMethods:     getEnvAsStringArray("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			AllowHeaders:     getEnvAsStringArray("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"}),
			ExposeHeaders:    getEnvAsStringArray("CORS_EXPOSE_HEADERS", []string{"Content-Length", "Content-Type"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 12),
		},
	}

	return config, nil
}
