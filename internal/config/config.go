package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates the whole service configuration.
type Config struct {
	Server    ServerConfig
	Mail      MailConfig
	AI        AIConfig
	Firebase  FirebaseConfig
	Retrieval RetrievalConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	retrieval, err := loadRetrievalConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Mail:      loadMailConfig(),
		AI:        ai,
		Firebase:  loadFirebaseConfig(),
		Retrieval: retrieval,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// MailConfig describes the SendGrid dispatch settings.
type MailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// Enabled reports whether the provider key is present.
func (c MailConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadMailConfig() MailConfig {
	return MailConfig{
		APIKey:    strings.TrimSpace(os.Getenv("SENDGRID_KEY")),
		FromEmail: getEnvOrDefault("FROM_EMAIL", "no-reply@yourdomain.test"),
		FromName:  getEnvOrDefault("FROM_NAME", "Youth Mental Hub"),
	}
}

// FirebaseConfig describes the identity provider and document store project.
// Credentials resolve through GOOGLE_APPLICATION_CREDENTIALS when a file is
// not given explicitly.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

func loadFirebaseConfig() FirebaseConfig {
	return FirebaseConfig{
		ProjectID:       strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		CredentialsFile: strings.TrimSpace(os.Getenv("FIREBASE_CREDENTIALS_FILE")),
	}
}

// RetrievalConfig bounds the grounding snapshot and selection.
type RetrievalConfig struct {
	SnapshotLimit  int
	SelectionLimit int
}

func loadRetrievalConfig() (RetrievalConfig, error) {
	snapshot, err := parseOptionalIntEnv("RAG_SNAPSHOT_LIMIT")
	if err != nil {
		return RetrievalConfig{}, err
	}

	selection, err := parseOptionalIntEnv("RAG_SELECTION_LIMIT")
	if err != nil {
		return RetrievalConfig{}, err
	}

	cfg := RetrievalConfig{SnapshotLimit: 12, SelectionLimit: 5}
	if snapshot != nil {
		cfg.SnapshotLimit = *snapshot
	}
	if selection != nil {
		cfg.SelectionLimit = *selection
	}
	return cfg, nil
}

// AIConfig describes the chat model settings.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds a model instance from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("chat model credentials missing: provide ARK_API_KEY + AI_MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("AI_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("AI_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("AI_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       getEnvOrDefault("AI_MODEL", "doubao-1-5-lite-32k-250115"),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
