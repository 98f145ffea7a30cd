package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Meli           Meli           `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	MeliSync       MeliSync       `mapstructure:",squash"`
	ListingActions ListingActions `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Meli guarda as credenciais do aplicativo registrado no Mercado Livre e os
// endpoints da API. Os tokens por usuário ficam no banco, não aqui.
type Meli struct {
	BaseURL     string `mapstructure:"meli_base_url"`
	AuthURL     string `mapstructure:"meli_auth_url"`
	AppID       string `mapstructure:"meli_app_id"`
	AppSecret   string `mapstructure:"meli_app_secret"`
	RedirectURI string `mapstructure:"meli_redirect_uri"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type MeliSync struct {
	CronSchedule       string `mapstructure:"meli_sync_cron"`
	PageSize           int    `mapstructure:"meli_sync_page_size"`
	RequestDelayMillis int    `mapstructure:"meli_sync_request_delay_millis"`
	Enabled            bool   `mapstructure:"meli_sync_enabled"`
}

type ListingActions struct {
	ItemDelayMillis int `mapstructure:"listing_actions_item_delay_millis"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/meli_seller")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("MELI_BASE_URL", "https://api.mercadolibre.com")
	viper.SetDefault("MELI_AUTH_URL", "https://auth.mercadolivre.com.br")
	viper.SetDefault("MELI_APP_ID", "your_app_id")
	viper.SetDefault("MELI_APP_SECRET", "your_app_secret")
	viper.SetDefault("MELI_REDIRECT_URI", "http://localhost:3000/meli/callback")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults para a sincronização com o Mercado Livre
	viper.SetDefault("MELI_SYNC_CRON", "0 3 * * *")            // Todos os dias às 3h da manhã
	viper.SetDefault("MELI_SYNC_PAGE_SIZE", 50)                // Tamanho de página da busca remota
	viper.SetDefault("MELI_SYNC_REQUEST_DELAY_MILLIS", 500)    // Pausa fixa entre páginas
	viper.SetDefault("MELI_SYNC_ENABLED", false)               // Habilitar sincronização agendada
	viper.SetDefault("LISTING_ACTIONS_ITEM_DELAY_MILLIS", 250) // Pausa fixa entre itens nas ações em lote

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile carrega o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
