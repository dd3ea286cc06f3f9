package query

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/viant/starindex/catalog"
	"github.com/viant/starindex/index"
)

// DefaultK is the number of neighbors returned when K is not configured.
const DefaultK = 5

// ErrInvalidConfig marks configuration errors.
var ErrInvalidConfig = errors.New("query: invalid config")

// SchemaConfig overrides catalog column names. Empty fields keep the
// defaults; Bands lists band columns in u, g, r, i, z order.
type SchemaConfig struct {
	ID    string   `yaml:"id,omitempty"`
	RA    string   `yaml:"ra,omitempty"`
	Dec   string   `yaml:"dec,omitempty"`
	Bands []string `yaml:"bands,omitempty"`
}

// Config describes one query run.
type Config struct {
	// File is a catalog CSV path.
	File string `yaml:"file,omitempty"`
	// DB is a SQLite catalog path; when set it is used instead of File.
	DB string `yaml:"db,omitempty"`

	RA  float64 `yaml:"ra"`
	Dec float64 `yaml:"dec"`
	// K <= 0 asks for no neighbors.
	K   int     `yaml:"k"`
	// Radius bounds the search distance; 0 means unbounded.
	Radius float64 `yaml:"radius,omitempty"`

	Index       string `yaml:"index,omitempty"`
	NodeSize    int    `yaml:"node_size,omitempty"`
	Parallelism int    `yaml:"parallelism,omitempty"`

	Schema *SchemaConfig `yaml:"schema,omitempty"`
}

// DefaultConfig returns a Config with K = DefaultK and the R-tree index.
func DefaultConfig() *Config {
	return &Config{
		K:     DefaultK,
		Index: string(index.KindRTree),
	}
}

// LoadConfig reads a YAML config on top of DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("query: cannot read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: invalid YAML in %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Source returns the catalog location Run reads from.
func (c *Config) Source() string {
	if c.DB != "" {
		return c.DB
	}
	return c.File
}

// Validate checks that the config describes a runnable query.
func (c *Config) Validate() error {
	switch {
	case c.File == "" && c.DB == "":
		return fmt.Errorf("%w: a catalog file or db is required", ErrInvalidConfig)
	case !finite(c.RA) || !finite(c.Dec):
		return fmt.Errorf("%w: query point (%v, %v) is not finite", ErrInvalidConfig, c.RA, c.Dec)
	case c.Radius < 0 || math.IsNaN(c.Radius):
		return fmt.Errorf("%w: radius must be >= 0, got %v", ErrInvalidConfig, c.Radius)
	case c.NodeSize < 0:
		return fmt.Errorf("%w: node_size must be >= 0, got %d", ErrInvalidConfig, c.NodeSize)
	case c.Parallelism < 0:
		return fmt.Errorf("%w: parallelism must be >= 0, got %d", ErrInvalidConfig, c.Parallelism)
	}
	if _, err := index.ParseKind(c.Index); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Schema != nil && len(c.Schema.Bands) > catalog.NumBands {
		return fmt.Errorf("%w: schema lists %d bands, at most %d allowed", ErrInvalidConfig, len(c.Schema.Bands), catalog.NumBands)
	}
	return nil
}

// CatalogSchema returns the column names to parse File with.
func (c *Config) CatalogSchema() catalog.Schema {
	s := catalog.DefaultSchema()
	if c.Schema == nil {
		return s
	}
	if c.Schema.ID != "" {
		s.ID = c.Schema.ID
	}
	if c.Schema.RA != "" {
		s.RA = c.Schema.RA
	}
	if c.Schema.Dec != "" {
		s.Dec = c.Schema.Dec
	}
	for b, name := range c.Schema.Bands {
		if b < catalog.NumBands && name != "" {
			s.Bands[b] = name
		}
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
