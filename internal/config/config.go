package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string     `yaml:"listen_addr"`
	Port             string     `yaml:"port"`
	DatabaseType     string     `yaml:"database_type"`
	DatabasePath     string     `yaml:"database_path"`
	SessionSecret    string     `yaml:"session_secret"`
	GinMode          string     `yaml:"gin_mode"`
	UploadDir        string     `yaml:"upload_dir"`
	UploadURLPath    string     `yaml:"upload_url_path"`
	StorageBucket    string     `yaml:"storage_bucket"`
	SiteBaseURL      string     `yaml:"site_base_url"`
	AdminEmail       string     `yaml:"admin_email"`
	AdminPassword    string     `yaml:"admin_password"`
	CORSAllowOrigins []string   `yaml:"cors_allow_origins"`
	Mail             MailConfig `yaml:"mail"`
}

// MailConfig 描述联系表单使用的邮件中继参数。
type MailConfig struct {
	Endpoint   string `yaml:"endpoint"`
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	PublicKey  string `yaml:"public_key"`
	Recipient  string `yaml:"recipient"`
}

// Load 从配置文件与环境变量读取应用配置，并为缺失项提供安全的默认值。
// 环境变量优先级高于配置文件。
func Load() AppConfig {
	cfg := AppConfig{}

	configPath := strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := loadFile(configPath, &cfg); err != nil {
		klog.Warningf("读取配置文件 %s 失败: %v", configPath, err)
	}

	overrideString(&cfg.Port, "PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	overrideString(&cfg.ListenAddr, "LISTEN_ADDR")
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = fmt.Sprintf(":%s", cfg.Port)
	}

	overrideString(&cfg.DatabaseType, "DB_TYPE")
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
	}

	overrideString(&cfg.DatabasePath, "DATABASE_PATH")
	overrideString(&cfg.DatabasePath, "DB_DSN")
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "portfolio.db"
	}

	overrideString(&cfg.SessionSecret, "SESSION_SECRET")
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "portfolio-dev-secret"
	}

	overrideString(&cfg.GinMode, "GIN_MODE")
	if cfg.GinMode == "" {
		cfg.GinMode = "release"
	}

	overrideString(&cfg.UploadDir, "UPLOAD_DIR")
	if cfg.UploadDir == "" {
		cfg.UploadDir = "data/uploads"
	}

	overrideString(&cfg.UploadURLPath, "UPLOAD_URL_PATH")
	if cfg.UploadURLPath == "" {
		cfg.UploadURLPath = "/uploads"
	}
	cfg.UploadURLPath = "/" + strings.Trim(cfg.UploadURLPath, "/")

	overrideString(&cfg.StorageBucket, "STORAGE_BUCKET")
	if cfg.StorageBucket == "" {
		cfg.StorageBucket = "portfolio"
	}

	overrideString(&cfg.SiteBaseURL, "SITE_BASE_URL")
	cfg.SiteBaseURL = strings.TrimRight(cfg.SiteBaseURL, "/")

	overrideString(&cfg.AdminEmail, "ADMIN_EMAIL")
	overrideString(&cfg.AdminPassword, "ADMIN_PASSWORD")

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS")); raw != "" {
		cfg.CORSAllowOrigins = splitList(raw)
	}
	if len(cfg.CORSAllowOrigins) == 0 {
		cfg.CORSAllowOrigins = []string{"*"}
	}

	overrideString(&cfg.Mail.Endpoint, "MAIL_RELAY_ENDPOINT")
	if cfg.Mail.Endpoint == "" {
		cfg.Mail.Endpoint = "https://api.emailjs.com/api/v1.0/email/send"
	}
	overrideString(&cfg.Mail.ServiceID, "MAIL_SERVICE_ID")
	overrideString(&cfg.Mail.TemplateID, "MAIL_TEMPLATE_ID")
	overrideString(&cfg.Mail.PublicKey, "MAIL_PUBLIC_KEY")
	overrideString(&cfg.Mail.Recipient, "MAIL_RECIPIENT")

	return cfg
}

func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func overrideString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
		return
	}
	*dst = strings.TrimSpace(*dst)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
