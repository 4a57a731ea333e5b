package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Log         LogConfig         `mapstructure:"log"`
	Recognition RecognitionConfig `mapstructure:"recognition"`
	Scanner     ScannerConfig     `mapstructure:"scanner"`
	Feeds       FeedsConfig       `mapstructure:"feeds"`
	AniList     AniListConfig     `mapstructure:"anilist"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug or release
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// RecognitionConfig 文件名识别的阈值配置
// 0.65 同时也是 UI 测试表格的绿色分界线，两边必须读同一个值
type RecognitionConfig struct {
	AcceptanceThreshold float64  `mapstructure:"acceptance_threshold"`
	SecondaryThreshold  float64  `mapstructure:"secondary_threshold"`
	ExtraNoiseTokens    []string `mapstructure:"extra_noise_tokens"`
	CorpusPath          string   `mapstructure:"corpus_path"`
	Workers             int      `mapstructure:"workers"`
}

type ScannerConfig struct {
	Workers int `mapstructure:"workers"`
}

type FeedsConfig struct {
	RefreshMinutes int    `mapstructure:"refresh_minutes"`
	BaseURL        string `mapstructure:"base_url"`
}

type AniListConfig struct {
	Token string `mapstructure:"token"`
	Proxy string `mapstructure:"proxy"`
}

var AppConfig *Config

func LoadConfig(configPath string) error {
	v := viper.New()

	// 默认值
	v.SetDefault("server.port", 8319)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/anitrack.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("recognition.acceptance_threshold", 0.65)
	v.SetDefault("recognition.secondary_threshold", 0.3)
	v.SetDefault("recognition.extra_noise_tokens", []string{})
	v.SetDefault("recognition.corpus_path", "filename_tests.json")
	v.SetDefault("recognition.workers", 8)
	v.SetDefault("scanner.workers", 8)
	v.SetDefault("feeds.refresh_minutes", 60)
	v.SetDefault("feeds.base_url", "https://nyaa.si")
	v.SetDefault("anilist.token", "")
	v.SetDefault("anilist.proxy", "")

	// 配置文件路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	// 环境变量替换 (使用 ANITRACK_ 前缀)
	// 比如 ANITRACK_SERVER_PORT=9090
	v.SetEnvPrefix("ANITRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, use defaults
		fmt.Println("Config file not found, using defaults")
	}

	AppConfig = &Config{}
	if err := v.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
