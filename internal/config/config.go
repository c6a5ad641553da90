package config

import (
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Funding  FundingConfig  `mapstructure:"funding"`
	Storage  StorageConfig  `mapstructure:"storage"`
	AI       AIConfig       `mapstructure:"ai"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储配置，driver 为 memory 时使用内存存储
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres, memory
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	// 单次存储操作超时（秒），超时返回 StorageUnavailable
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// RedisConfig 幂等键存储配置，addr 为空时关闭幂等检查
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// 幂等键保留时长（秒）
	IdempotencyTTLSeconds int `mapstructure:"idempotency_ttl_seconds"`
}

// FundingConfig 资金账本规则
type FundingConfig struct {
	InvestmentMin float64 `mapstructure:"investment_min"` // 投资最低金额
	CrowdfundMin  float64 `mapstructure:"crowdfund_min"`  // 众筹最低金额
	// 是否禁止超募。关闭时允许超过目标金额继续出资
	EnforceCap bool `mapstructure:"enforce_cap"`
	// 账本对账任务周期（秒）
	ReconcileIntervalSeconds int `mapstructure:"reconcile_interval_seconds"`
}

// InvestmentMinDecimal 投资最低金额
func (f FundingConfig) InvestmentMinDecimal() decimal.Decimal {
	return decimal.NewFromFloat(f.InvestmentMin)
}

// CrowdfundMinDecimal 众筹最低金额
func (f FundingConfig) CrowdfundMinDecimal() decimal.Decimal {
	return decimal.NewFromFloat(f.CrowdfundMin)
}

// StorageConfig 媒体文件存储配置
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`    // local, s3
	LocalDir string `mapstructure:"local_dir"` // local 模式的落盘目录
	BaseURL  string `mapstructure:"base_url"`  // local 模式返回的URL前缀
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Region string `mapstructure:"s3_region"`
	// 上传大小上限（MB）
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
}

// AIConfig 外部文本生成服务配置
type AIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type CORSConfig struct {
	Origin string `mapstructure:"origin"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/fundhive")

	// 设置默认值
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "fundhive")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.timeout_seconds", 5)
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.idempotency_ttl_seconds", 86400)
	viper.SetDefault("funding.investment_min", 1000)
	viper.SetDefault("funding.crowdfund_min", 10)
	viper.SetDefault("funding.enforce_cap", false)
	viper.SetDefault("funding.reconcile_interval_seconds", 300)
	viper.SetDefault("storage.driver", "local")
	viper.SetDefault("storage.local_dir", "uploads")
	viper.SetDefault("storage.base_url", "/uploads")
	viper.SetDefault("storage.max_upload_mb", 32)
	viper.SetDefault("ai.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("ai.model", "llama-3.3-70b-versatile")
	viper.SetDefault("cors.origin", "http://localhost:5173")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
