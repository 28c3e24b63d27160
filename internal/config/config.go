package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/syntrade-lab/syntrade/internal/backtest/commission"
	"github.com/syntrade-lab/syntrade/internal/engine"
	"github.com/syntrade-lab/syntrade/internal/types"
	"github.com/syntrade-lab/syntrade/internal/version"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// SymbolConfig is one symbol block of the run config.
type SymbolConfig struct {
	Symbol     string                 `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Name of the simulated instrument" validate:"required"`
	Generation types.GenerationParams `yaml:"generation" json:"generation" jsonschema:"title=Generation,description=Synthetic series parameters for this symbol"`
}

// Config drives one CLI or service run: a shared strategy applied
// independently to each configured symbol.
type Config struct {
	// SchemaVersion gates config compatibility against the engine version.
	// Empty means "main" (no check).
	SchemaVersion string `yaml:"schema_version" json:"schema_version" jsonschema:"title=Schema Version,description=Config schema version the file was written for"`
	// Commission selects the fee model. Empty means percent (10 bps).
	Commission commission.Model `yaml:"commission" json:"commission" jsonschema:"title=Commission,description=The commission model applied to every fill"`
	// Strategy is the crossover setup shared by all symbols.
	Strategy types.StrategyParams `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy"`
	// Symbols are processed independently, one pipeline pass each.
	Symbols []SymbolConfig `yaml:"symbols" json:"symbols" jsonschema:"title=Symbols" validate:"required,min=1,dive"`
}

// Load reads and validates a yaml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse unmarshals and validates a yaml config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate fails fast on any out-of-range parameter, before any
// computation starts.
func (c *Config) Validate() error {
	schemaVersion := c.SchemaVersion
	if schemaVersion == "" {
		schemaVersion = "main"
	}

	if err := version.CheckCompatibility(version.Version, schemaVersion); err != nil {
		return fmt.Errorf("incompatible config: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := c.Strategy.Validate(); err != nil {
		return err
	}

	for _, symbol := range c.Symbols {
		if err := symbol.Generation.Validate(); err != nil {
			return fmt.Errorf("symbol %q: %w", symbol.Symbol, err)
		}
	}

	return nil
}

// Runs expands the config into one engine run per symbol.
func (c *Config) Runs() []engine.SymbolRun {
	runs := make([]engine.SymbolRun, 0, len(c.Symbols))
	for _, symbol := range c.Symbols {
		runs = append(runs, engine.SymbolRun{
			Symbol:     symbol.Symbol,
			Generation: symbol.Generation,
			Strategy:   c.Strategy,
		})
	}

	return runs
}

// Fee returns the configured commission model handler.
func (c *Config) Fee() commission.Fee {
	return commission.GetFeeHandler(c.Commission)
}

// GenerateSchema generates a JSON schema for the run config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if strings.Contains(t.String(), "commission.Model") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission.AllModels,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "syntrade-run-config"
	schema.Description = "Configuration schema for a syntrade backtest run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates an indented JSON schema string for the run
// config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// Default returns the demo configuration mirroring the canonical three
// synthetic tickers.
func Default() *Config {
	return &Config{
		Commission: commission.ModelPercent,
		Strategy:   types.DefaultStrategyParams(),
		Symbols: []SymbolConfig{
			{
				Symbol: "AAPL_SYN",
				Generation: types.GenerationParams{
					Count:      1500,
					StartPrice: 150,
					Drift:      0.12,
					Volatility: 0.28,
					Seed:       1,
				},
			},
			{
				Symbol: "MSFT_SYN",
				Generation: types.GenerationParams{
					Count:      1500,
					StartPrice: 300,
					Drift:      0.10,
					Volatility: 0.22,
					Seed:       2,
				},
			},
			{
				Symbol: "TSLA_SYN",
				Generation: types.GenerationParams{
					Count:      1500,
					StartPrice: 200,
					Drift:      0.15,
					Volatility: 0.55,
					Seed:       3,
				},
			},
		},
	}
}
