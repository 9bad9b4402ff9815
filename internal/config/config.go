package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Dataset  Dataset  `mapstructure:",squash"`
	Analysis Analysis `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Dataset controla a carga inicial de dados na subida do serviço
type Dataset struct {
	Path   string `mapstructure:"dataset_path"`
	Format string `mapstructure:"dataset_format"` // auto, text, xlsx ou compact
}

// Analysis reúne os parâmetros externos das análises, todos editáveis pela
// camada de apresentação em tempo de execução
type Analysis struct {
	DefaultGoal     float64 `mapstructure:"analysis_default_goal"`
	DefaultQuota    float64 `mapstructure:"analysis_default_quota"`
	CycleGoalDays   float64 `mapstructure:"analysis_cycle_goal_days"`
	MinYear         int     `mapstructure:"analysis_min_year"`
	MaxYear         int     `mapstructure:"analysis_max_year"`
	TopAccountLimit int     `mapstructure:"analysis_top_account_limit"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATASET_PATH", "")
	viper.SetDefault("DATASET_FORMAT", "auto")

	viper.SetDefault("ANALYSIS_DEFAULT_GOAL", 1_000_000)
	viper.SetDefault("ANALYSIS_DEFAULT_QUOTA", 500_000)
	viper.SetDefault("ANALYSIS_CYCLE_GOAL_DAYS", 45)
	viper.SetDefault("ANALYSIS_MIN_YEAR", 2022)
	viper.SetDefault("ANALYSIS_MAX_YEAR", 2026)
	viper.SetDefault("ANALYSIS_TOP_ACCOUNT_LIMIT", 20)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

	return config, nil
}

// SupportedYears devolve o intervalo fechado de anos fiscais aceitos
func (c *Config) SupportedYears() []int {
	years := make([]int, 0, c.Analysis.MaxYear-c.Analysis.MinYear+1)
	for y := c.Analysis.MinYear; y <= c.Analysis.MaxYear; y++ {
		years = append(years, y)
	}
	return years
}

// Função auxiliar para carregar o arquivo .env usando godotenv
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
