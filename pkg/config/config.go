package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/spf13/viper"
)

const (
	StoreFirestore = "firestore"
	StoreMemory    = "memory"
)

type AppConfig struct {
	API      APIConfig
	Firebase FirebaseConfig
	Mail     MailConfig
	Store    string `mapstructure:"store"`
}

type APIConfig struct {
	Port        string   `mapstructure:"port"`
	Environment string   `mapstructure:"environment"`
	CORSHosts   []string `mapstructure:"cors_hosts"`
	GinMode     string   `mapstructure:"gin_mode"`
}

type FirebaseConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

type MailConfig struct {
	ResendKey string `mapstructure:"resend_key"`
	From      string `mapstructure:"from"`
	HostURL   string `mapstructure:"host_url"`
}

// env variable names bound to config keys.
var bindings = map[string]string{
	"api.port":                  "PORT",
	"api.environment":           "ENVIRONMENT",
	"api.cors_hosts":            "CORS_HOSTS",
	"api.gin_mode":              "GIN_MODE",
	"firebase.project_id":       "FIREBASE_PROJECT_ID",
	"firebase.credentials_json": "FIREBASE_CREDENTIALS_JSON",
	"mail.resend_key":           "RESEND_KEY",
	"mail.from":                 "MAIL_FROM",
	"mail.host_url":             "HOST_URL",
	"store":                     "STORE",
}

// Load reads the config file at path when it exists and lets environment
// variables override every key.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("api.port", "8080")
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.gin_mode", "release")
	v.SetDefault("api.cors_hosts", []string{})
	v.SetDefault("mail.from", "onboarding@resend.dev")
	v.SetDefault("store", StoreFirestore)

	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s -> %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file -> %w", err)
			}
		}
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config -> %w", err)
	}
	conf.API.CORSHosts = splitHosts(conf.API.CORSHosts)
	conf.Store = strings.ToLower(strings.TrimSpace(conf.Store))

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config -> %w", err)
	}
	return conf, nil
}

// CORS_HOSTS comes in as one comma separated string.
func splitHosts(hosts []string) []string {
	out := []string{}
	for _, h := range hosts {
		for _, part := range strings.Split(h, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *AppConfig) Validate() error {
	fields := []*validation.FieldRules{
		validation.Field(&c.API),
		validation.Field(&c.Store, validation.Required, validation.In(StoreFirestore, StoreMemory)),
	}
	if c.Store == StoreFirestore {
		fields = append(fields, validation.Field(&c.Firebase))
	}
	return validation.ValidateStruct(c, fields...)
}

func (c APIConfig) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.Environment, validation.Required),
	)
}

func (c FirebaseConfig) Validate() error {
	return validation.ValidateStruct(
		&c,
		validation.Field(&c.ProjectID, validation.Required),
	)
}

func (c *AppConfig) IsProduction() bool {
	return c.API.Environment == "production"
}
