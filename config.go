package orbits

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigEnvPrefix prefixes the environment variables overriding the configuration.
const ConfigEnvPrefix = "IMPACTOR"

// Config holds the runtime configuration of the orbit core.
type Config struct {
	SceneScale float64                   `mapstructure:"scene_scale"`
	LogLevel   string                    `mapstructure:"log_level"`
	Search     SearchConfig              `mapstructure:"search"`
	Bodies     map[string]ElementsRecord `mapstructure:"bodies"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	return Config{
		SceneScale: DefaultSceneScale,
		LogLevel:   "info",
		Search:     DefaultSearchConfig(),
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("scene_scale", def.SceneScale)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("search.step", def.Search.Step)
	v.SetDefault("search.steps", def.Search.Steps)
	v.SetDefault("search.threshold", def.Search.Threshold)
	v.SetDefault("search.cancel_every", def.Search.CancelEvery)
}

// LoadConfig reads the configuration file at path (TOML, YAML or JSON, by
// extension). An empty path only applies defaults and environment overrides,
// e.g. IMPACTOR_SCENE_SCALE or IMPACTOR_SEARCH_THRESHOLD.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(ConfigEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if conf.SceneScale <= 0 {
		return Config{}, fmt.Errorf("%s: scene_scale must be positive, got %f", path, conf.SceneScale)
	}
	return conf, nil
}

// Propagator builds a propagator from this configuration.
func (c Config) Propagator(opts ...PropagatorOption) *Propagator {
	return NewPropagator(append([]PropagatorOption{WithSceneScale(c.SceneScale)}, opts...)...)
}

// Registry builds a registry including the configured bodies.
func (c Config) Registry(opts ...RegistryOption) *Registry {
	if len(c.Bodies) > 0 {
		opts = append([]RegistryOption{WithOverrides(c.Bodies)}, opts...)
	}
	return NewRegistry(opts...)
}
