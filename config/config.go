package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Providers struct {
		Places struct {
			BaseURL string        `mapstructure:"baseURL"`
			APIKey  string        `mapstructure:"apiKey"`
			Timeout time.Duration `mapstructure:"timeout"`
		} `mapstructure:"places"`
		Nominatim struct {
			BaseURL string        `mapstructure:"baseURL"`
			Timeout time.Duration `mapstructure:"timeout"`
		} `mapstructure:"nominatim"`
		Gemini struct {
			Model string `mapstructure:"model"`
		} `mapstructure:"gemini"`
	} `mapstructure:"providers"`
	Search struct {
		MaxCandidates        int `mapstructure:"maxCandidates"`
		SufficiencyThreshold int `mapstructure:"sufficiencyThreshold"`
	} `mapstructure:"search"`
	Planner struct {
		MinCandidates   int `mapstructure:"minCandidates"`
		MinStopsCurated int `mapstructure:"minStopsCurated"`
		MinStopsArea    int `mapstructure:"minStopsArea"`
		MinStopsSimple  int `mapstructure:"minStopsSimple"`
	} `mapstructure:"planner"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Secrets come from the environment, never from the file
	_ = v.BindEnv("providers.places.apiKey", "GOOGLE_MAPS_API_KEY")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
