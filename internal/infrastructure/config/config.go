package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 PDFSTORE_SERVER_PORT
const EnvPrefix = "PDFSTORE"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              string        `mapstructure:"port" validate:"required,numeric"`
	Mode              string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"gte=0"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

type StorageConfig struct {
	RootDir          string        `mapstructure:"root_dir" validate:"required"` // 相对路径基于可执行文件所在目录
	MaxUploadMB      int64         `mapstructure:"max_upload_mb" validate:"gte=0"` // 0 表示不限制
	TempMaxAge       time.Duration `mapstructure:"temp_max_age" validate:"gt=0"`
	SweepCron        string        `mapstructure:"sweep_cron"` // 为空则不启动清理任务
	AllowedMIMETypes []string      `mapstructure:"allowed_mime_types"`
}

type LogConfig struct {
	Level     string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Output    string `mapstructure:"output" validate:"oneof=console file both"`
	Format    string `mapstructure:"format" validate:"oneof=text json"`
	FilePath  string `mapstructure:"file_path"`
	Colorize  bool   `mapstructure:"colorize"`
	AddSource bool   `mapstructure:"add_source"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins" validate:"min=1"`
}

type RateLimitConfig struct {
	QPS   int `mapstructure:"qps" validate:"gte=0"` // 每个客户端每秒请求数，0 表示不限制
	Burst int `mapstructure:"burst" validate:"gte=0"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// MaxUploadBytes 上传大小上限（字节），0 表示不限制
func (s StorageConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

var validate = validator.New()

// SetDefaults 设置默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("storage.root_dir", "pdfs")
	v.SetDefault("storage.max_upload_mb", 32)
	v.SetDefault("storage.temp_max_age", "1h")
	v.SetDefault("storage.sweep_cron", "@every 1h")
	v.SetDefault("storage.allowed_mime_types", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_path", "logs/pdf-store.log")
	v.SetDefault("log.colorize", false)
	v.SetDefault("log.add_source", false)

	v.SetDefault("cors.allow_origins", []string{"*"})

	v.SetDefault("ratelimit.qps", 0)
	v.SetDefault("ratelimit.burst", 0)

	v.SetDefault("metrics.enabled", true)
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	return load(v)
}

// LoadConfigFile 从指定文件加载配置
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate 校验配置
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	if cfg.RateLimit.QPS > 0 && cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = cfg.RateLimit.QPS
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
