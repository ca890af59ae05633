package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig        `mapstructure:"api"`
	Gin       *GinConfig        `mapstructure:"gin"`
	Firestore *FirestoreConfig  `mapstructure:"firestore"`
	Images    *ImageStoreConfig `mapstructure:"images"`
	Contest   *ContestConfig    `mapstructure:"contest"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type FirestoreConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type ImageStoreConfig struct {
	Provider      string `mapstructure:"provider"` // "imgur" or "filesystem"
	BasePath      string `mapstructure:"base_path"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	ImgurBaseURL  string `mapstructure:"imgur_base_url"`
	ImgurClientID string `mapstructure:"imgur_client_id"`
}

// ContestConfig holds the role allow-list. An email on AdminEmails
// resolves to the admin role when no role record exists yet; JudgeEmails
// likewise for judges.
type ContestConfig struct {
	AdminEmails []string `mapstructure:"admin_emails"`
	JudgeEmails []string `mapstructure:"judge_emails"`
}

func Load(configPath string) (*AppConfig, error) {
	conf := &AppConfig{}

	viper.SetConfigFile(configPath)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info(fmt.Sprintf("config file changed: %v", e.Name))

		if err := viper.Unmarshal(conf); err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
		}
	})
	viper.WatchConfig()

	return conf, nil
}
