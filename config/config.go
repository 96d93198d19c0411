package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string           `mapstructure:"port"`
	LogLevel     string           `mapstructure:"log_level"`
	AIProvider   string           `mapstructure:"ai_provider"`
	AIEndpoint   string           `mapstructure:"ai_endpoint"`
	Model        string           `mapstructure:"model"`
	Temperature  float32          `mapstructure:"temperature"`
	OpenAIAPIKey string           `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey string           `mapstructure:"GEMINI_API_KEY"`
	MongoURI     string           `mapstructure:"MONGODB_URI"`
	UploadDir    string           `mapstructure:"upload_dir"`
	Generation   GenerationConfig `mapstructure:"generation"`
}

// WordRange is an inclusive target word range handed to the model as an
// instruction, not enforced post-hoc.
type WordRange struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// GenerationConfig carries the generation tuning values. They are product
// tuning numbers with no derivation, so they live in config rather than in
// code.
type GenerationConfig struct {
	ChunkWords        int       `mapstructure:"chunk_words"`
	CardContextWords  int       `mapstructure:"card_context_words"`
	TopicContextWords int       `mapstructure:"topic_context_words"`
	TitleContextWords int       `mapstructure:"title_context_words"`
	ChatContextWords  int       `mapstructure:"chat_context_words"`
	TitleMaxChars     int       `mapstructure:"title_max_chars"`
	TopicsMax         int       `mapstructure:"topics_max"`
	FallbackTitle     string    `mapstructure:"fallback_title"`
	Concise           WordRange `mapstructure:"concise"`
	Standard          WordRange `mapstructure:"standard"`
	Comprehensive     WordRange `mapstructure:"comprehensive"`
}

// DefaultGenerationConfig returns the stock tuning values.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		ChunkWords:        1300,
		CardContextWords:  1500,
		TopicContextWords: 1000,
		TitleContextWords: 1000,
		ChatContextWords:  1000,
		TitleMaxChars:     35,
		TopicsMax:         4,
		FallbackTitle:     "Untitled note",
		Concise:           WordRange{Min: 400, Max: 800},
		Standard:          WordRange{Min: 900, Max: 1500},
		Comprehensive:     WordRange{Min: 1500, Max: 2600},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	setGenerationDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("MONGODB_URI")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setGenerationDefaults(v *viper.Viper) {
	gen := DefaultGenerationConfig()
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("ai_provider", "openai")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("temperature", 0.7)
	v.SetDefault("generation.chunk_words", gen.ChunkWords)
	v.SetDefault("generation.card_context_words", gen.CardContextWords)
	v.SetDefault("generation.topic_context_words", gen.TopicContextWords)
	v.SetDefault("generation.title_context_words", gen.TitleContextWords)
	v.SetDefault("generation.chat_context_words", gen.ChatContextWords)
	v.SetDefault("generation.title_max_chars", gen.TitleMaxChars)
	v.SetDefault("generation.topics_max", gen.TopicsMax)
	v.SetDefault("generation.fallback_title", gen.FallbackTitle)
	v.SetDefault("generation.concise.min", gen.Concise.Min)
	v.SetDefault("generation.concise.max", gen.Concise.Max)
	v.SetDefault("generation.standard.min", gen.Standard.Min)
	v.SetDefault("generation.standard.max", gen.Standard.Max)
	v.SetDefault("generation.comprehensive.min", gen.Comprehensive.Min)
	v.SetDefault("generation.comprehensive.max", gen.Comprehensive.Max)
}
