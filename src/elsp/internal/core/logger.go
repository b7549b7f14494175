package core

import (
	"fmt"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_configKeyLogging     = "logging"
	_configKeyServiceName = "service.name"
)

// LoggingConfig is the "logging" section of the configuration.
type LoggingConfig struct {
	Level       string   `yaml:"level"`
	Development bool     `yaml:"development"`
	Encoding    string   `yaml:"encoding"`
	OutputPaths []string `yaml:"outputPaths"`
}

// LoggerModule provides the logger dependencies.
var LoggerModule = fx.Options(
	fx.Provide(NewSugaredLogger),
	fx.Provide(NewLogger),
)

// NewLogger exposes the structured logger behind sugar.
func NewLogger(sugar *zap.SugaredLogger) *zap.Logger {
	return sugar.Desugar()
}

// NewSugaredLogger builds the process logger from the "logging" section.
// Every entry carries the configured service name.
func NewSugaredLogger(provider config.Provider) (*zap.SugaredLogger, error) {
	var cfg LoggingConfig
	if err := provider.Get(_configKeyLogging).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyLogging, err)
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = zapcore.ParseLevel(cfg.Level); err != nil {
			return nil, err
		}
	}

	encoder, err := newEncoder(cfg)
	if err != nil {
		return nil, err
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}
	sink, _, err := zap.Open(outputs...)
	if err != nil {
		return nil, fmt.Errorf("opening log outputs: %w", err)
	}

	opts := []zap.Option{zap.ErrorOutput(sink)}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	logger := zap.New(zapcore.NewCore(encoder, sink, level), opts...)

	var service string
	if err := provider.Get(_configKeyServiceName).Populate(&service); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKeyServiceName, err)
	}
	if service != "" {
		logger = logger.With(zap.String("service", service))
	}
	return logger.Sugar(), nil
}

func newEncoder(cfg LoggingConfig) (zapcore.Encoder, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	switch cfg.Encoding {
	case "", "json":
		return zapcore.NewJSONEncoder(encoderConfig), nil
	case "console":
		return zapcore.NewConsoleEncoder(encoderConfig), nil
	default:
		return nil, fmt.Errorf("unknown log encoding %q", cfg.Encoding)
	}
}
