package config

import (
	"fmt"
	"net"
	"os"

	_const "github.com/TimeWtr/batch_scheduler/const"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config 批处理模拟器的全部配置
type Config struct {
	// Algorithm 命令行未指定算法时使用
	Algorithm string `yaml:"algorithm"`
	// Format 输出格式，text或table
	Format string `yaml:"format"`
	// Preempt 被拆分作业的重新入队策略，unbounded或once
	Preempt string `yaml:"preempt"`
	// Limiter 对比模式下同时运行的算法数量
	Limiter int64 `yaml:"limiter"`
	// Cron 定时重跑模拟，例如"@every 1m"
	Cron string `yaml:"cron"`
	// Listen HTTP接口的监听地址，为空时不启动
	Listen string `yaml:"listen"`

	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type DatabaseConfig struct {
	// DSN 保存batch_jobs表的sqlite数据库
	DSN string `yaml:"dsn"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Format:  "text",
		Preempt: _const.PreemptUnbounded.String(),
		Limiter: _const.DefaultLimiter,
		Log: LogConfig{
			// 默认只输出告警及以上级别
			Level: "warn",
		},
	}
}

// Load 在默认配置之上读取YAML配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate 校验配置项
func (c *Config) Validate() error {
	if c.Algorithm != "" {
		if _, err := _const.ParseAlgorithm(c.Algorithm); err != nil {
			return err
		}
	}
	switch c.Format {
	case "text", "table":
	default:
		return fmt.Errorf("invalid format %q: must be text or table", c.Format)
	}
	if _, err := _const.ParsePreemptPolicy(c.Preempt); err != nil {
		return err
	}
	if c.Limiter <= 0 {
		return fmt.Errorf("invalid limiter %d: must be positive", c.Limiter)
	}
	if c.Cron != "" {
		if _, err := _const.Parser.Parse(c.Cron); err != nil {
			return fmt.Errorf("invalid cron %q: %w", c.Cron, err)
		}
	}
	if c.Listen != "" {
		if _, _, err := net.SplitHostPort(c.Listen); err != nil {
			return fmt.Errorf("invalid listen %q: %w", c.Listen, err)
		}
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// PreemptPolicy 解析后的抢占策略，需在Validate之后调用
func (c *Config) PreemptPolicy() _const.PreemptPolicy {
	p, _ := _const.ParsePreemptPolicy(c.Preempt)
	return p
}

// NewLogger 按Log配置创建zap日志
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
