// Package config 加载 Actor 框架和演示程序的配置
//
// 默认值来自 [DefaultConfig]，可被 YAML/JSON 配置文件覆盖，
// 文件变化时 [Watch] 会重新加载。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lwmacct/251216-go-pkg-actor/pkg/actor"
)

// 配置错误
var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidFormat   = errors.New("invalid log format")
	ErrInvalidTimeout  = errors.New("invalid shutdown timeout")
	ErrUnsupportedFile = errors.New("unsupported config file format")
	ErrConfigParse     = errors.New("configuration parse error")
)

// Config 应用配置
type Config struct {
	// Name Framework 名称，出现在地址和日志中
	Name      string          `koanf:"name" yaml:"name"`
	Log       LogConfig       `koanf:"log" yaml:"log"`
	Framework FrameworkConfig `koanf:"framework" yaml:"framework"`
	Demo      DemoConfig      `koanf:"demo" yaml:"demo"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level debug/info/warn/error
	Level string `koanf:"level" yaml:"level"`
	// Format text/json
	Format string `koanf:"format" yaml:"format"`
}

// FrameworkConfig Framework 配置
type FrameworkConfig struct {
	DiagnosticLogging bool          `koanf:"diagnostic_logging" yaml:"diagnostic_logging"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DemoConfig pingpong 演示程序的消息内容
type DemoConfig struct {
	Greeting string        `koanf:"greeting" yaml:"greeting"`
	Suffix   string        `koanf:"suffix" yaml:"suffix"`
	Text     string        `koanf:"text" yaml:"text"`
	Value    int           `koanf:"value" yaml:"value"`
	Delay    time.Duration `koanf:"delay" yaml:"delay"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Name: "pingpong",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Framework: FrameworkConfig{
			DiagnosticLogging: true,
			ShutdownTimeout:   30 * time.Second,
		},
		Demo: DemoConfig{
			Greeting: "Hello World",
			Suffix:   "Awesome",
			Text:     "Hi baby~",
			Value:    798,
			Delay:    0,
		},
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.Name == "" {
		return ErrInvalidName
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Log.Format)
	}
	if c.Framework.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeout, c.Framework.ShutdownTimeout)
	}
	return nil
}

// ActorConfig 转换为 actor.FrameworkConfig
func (c *Config) ActorConfig(logger *slog.Logger) *actor.FrameworkConfig {
	fc := actor.DefaultFrameworkConfig()
	fc.DiagnosticLogging = c.Framework.DiagnosticLogging
	fc.ShutdownTimeout = c.Framework.ShutdownTimeout
	fc.Logger = logger
	return fc
}

// MarshalYAML 以可读字符串输出时长
func (c FrameworkConfig) MarshalYAML() (any, error) {
	return struct {
		DiagnosticLogging bool   `yaml:"diagnostic_logging"`
		ShutdownTimeout   string `yaml:"shutdown_timeout"`
	}{c.DiagnosticLogging, c.ShutdownTimeout.String()}, nil
}

// MarshalYAML 以可读字符串输出时长
func (c DemoConfig) MarshalYAML() (any, error) {
	return struct {
		Greeting string `yaml:"greeting"`
		Suffix   string `yaml:"suffix"`
		Text     string `yaml:"text"`
		Value    int    `yaml:"value"`
		Delay    string `yaml:"delay"`
	}{c.Greeting, c.Suffix, c.Text, c.Value, c.Delay.String()}, nil
}
