package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Postgres PostgresConfig `mapstructure:"postgres"` // 文档库配置
	Redis    RedisConfig    `mapstructure:"redis"`    // 快速缓存与任务队列
	Queue    QueueConfig    `mapstructure:"queue"`    // 外部 worker 队列
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig 文档库连接配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN（URL 形式）
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// RedisConfig 快速缓存连接配置
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	MaxIdle     int           `mapstructure:"max_idle"`
	MaxActive   int           `mapstructure:"max_active"` // 0 不限制
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// QueueConfig 外部 feed worker 队列
type QueueConfig struct {
	Prefix string `mapstructure:"prefix"` // 队列名前缀，队列名本身固定为 newLiveMatch / newFeaturedMatch
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"` // logrus 级别：debug/info/warn/error
}

// LoadConfig 从 dir 读取 config.yaml，敏感项从 .env / 环境变量覆盖（不提交 git）
func LoadConfig(dir string) (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "./config"
	}
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", time.Hour)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.max_idle", 10)
	v.SetDefault("redis.idle_timeout", 5*time.Minute)
	v.SetDefault("redis.dial_timeout", 3*time.Second)
	v.SetDefault("log.level", "info")
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}
