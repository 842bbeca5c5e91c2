package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Thokas/zombie-survival/internal/errors"
	"github.com/Thokas/zombie-survival/internal/models"
)

// Scenario is a YAML file describing one or more runs. Settings keys sit
// at the top level next to the scenario metadata:
//
//	name: siege
//	runs: 10
//	zombie_count: 200
//	survivor_count: 12
//	weapon_variety: 5
type Scenario struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	Runs            int    `yaml:"runs"`
	models.Settings `yaml:",inline"`
}

// LoadScenario reads path and overlays it onto base. Keys missing from
// the file keep their value from base; unknown keys are rejected.
func LoadScenario(path string, base models.Settings) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	sc, err := ParseScenario(data, base)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes a scenario document overlaid onto base.
func ParseScenario(data []byte, base models.Settings) (Scenario, error) {
	sc := Scenario{Runs: 1, Settings: base}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return Scenario{}, apperrors.Wrap(apperrors.CodeInvalidConfiguration, "parse scenario: "+err.Error(), err)
	}
	if sc.Runs < 1 {
		return Scenario{}, apperrors.WithMetadata(apperrors.CodeInvalidConfiguration,
			"runs must be greater than 0", map[string]string{"field": "runs"})
	}
	return sc, nil
}

// MarshalScenario renders a scenario file, for -dump.
func MarshalScenario(sc Scenario) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return nil, fmt.Errorf("encode scenario: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode scenario: %w", err)
	}
	return buf.Bytes(), nil
}
