// Package nutrition holds the nutrient catalog and the daily analysis
// engine: aggregation of a student's selections, percentage-of-target,
// corrective suggestions and per-meal advisories.
package nutrition

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/schoolmeal-backend/internal/domain/meals"
)

type Nutrient string

const (
	Calories Nutrient = "calories"
	Protein  Nutrient = "protein"
	Carbs    Nutrient = "carbs"
	Fats     Nutrient = "fats"
	Sugar    Nutrient = "sugar"
	Fibre    Nutrient = "fibre"
	Sodium   Nutrient = "sodium"
)

// Tracked is the fixed enumeration order for totals and suggestions.
var Tracked = []Nutrient{Calories, Protein, Carbs, Fats, Sugar, Fibre, Sodium}

// Limited nutrients are only checked against their maximum.
func (n Nutrient) Limited() bool {
	return n == Sugar || n == Sodium
}

// Amount reads the value of n from a template.
func Amount(t *meals.FoodTemplate, n Nutrient) float64 {
	if t == nil {
		return 0
	}
	switch n {
	case Calories:
		return t.Calories
	case Protein:
		return t.Protein
	case Carbs:
		return t.Carbs
	case Fats:
		return t.Fats
	case Sugar:
		return t.Sugar
	case Fibre:
		return t.Fibre
	case Sodium:
		return t.Sodium
	}
	return 0
}

type Spec struct {
	Min         float64 `yaml:"min" json:"min"`
	Max         float64 `yaml:"max" json:"max"`
	Unit        string  `yaml:"unit" json:"unit"`
	Benefit     string  `yaml:"benefit" json:"benefit"`
	Impact      string  `yaml:"impact" json:"impact"`
	DailyImpact string  `yaml:"daily_impact" json:"daily_impact"`
}

// Midpoint is the percentage denominator for non-limited nutrients.
func (s Spec) Midpoint() float64 {
	return (s.Min + s.Max) / 2
}

type Catalog map[Nutrient]Spec

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var defaultCatalog = mustParse(defaultCatalogYAML)

func mustParse(raw []byte) Catalog {
	c, err := ParseCatalog(raw)
	if err != nil {
		panic(fmt.Sprintf("nutrition: embedded catalog: %v", err))
	}
	return c
}

// DefaultCatalog returns a copy of the embedded catalog.
func DefaultCatalog() Catalog {
	out := make(Catalog, len(defaultCatalog))
	for k, v := range defaultCatalog {
		out[k] = v
	}
	return out
}

// LoadCatalog reads a catalog file, or the embedded one when path is empty.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nutrient catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (Catalog, error) {
	var doc struct {
		Nutrients map[string]Spec `yaml:"nutrients"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse nutrient catalog: %w", err)
	}
	c := make(Catalog, len(doc.Nutrients))
	for k, v := range doc.Nutrients {
		c[Nutrient(k)] = v
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every tracked nutrient has a usable range.
func (c Catalog) Validate() error {
	for _, n := range Tracked {
		s, ok := c[n]
		if !ok {
			return fmt.Errorf("nutrient catalog: missing %q", n)
		}
		if s.Min < 0 || s.Max <= 0 || s.Min > s.Max || math.IsNaN(s.Min) || math.IsNaN(s.Max) {
			return fmt.Errorf("nutrient catalog: invalid range for %q: [%v, %v]", n, s.Min, s.Max)
		}
		if s.Unit == "" {
			return fmt.Errorf("nutrient catalog: missing unit for %q", n)
		}
	}
	return nil
}
