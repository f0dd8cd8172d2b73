package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Nikkoola22/RH-cfdt/internal/domain"
)

// File names expected inside the knowledge data directory.
const (
	catalogFile     = "catalog.yaml"
	bodiesFile      = "bodies.yaml"
	formationFile   = "formation.yaml"
	teletravailFile = "teletravail.txt"
)

type catalogDoc struct {
	Chapters []domain.Chapter `yaml:"chapters"`
}

// Load reads the knowledge sources from dir and builds the immutable index.
// The formation document is structured YAML serialized to indented JSON for
// injection; the teletravail document is injected as-is.
func Load(dir string) (*Index, error) {
	var catalog catalogDoc
	if err := readYAML(filepath.Join(dir, catalogFile), &catalog); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	bodies := map[int]string{}
	if err := readYAML(filepath.Join(dir, bodiesFile), &bodies); err != nil {
		return nil, fmt.Errorf("load chapter bodies: %w", err)
	}
	for id, body := range bodies {
		bodies[id] = strings.TrimSpace(body)
	}

	formation, err := loadFormation(filepath.Join(dir, formationFile))
	if err != nil {
		return nil, fmt.Errorf("load formation document: %w", err)
	}

	teletravail, err := os.ReadFile(filepath.Join(dir, teletravailFile))
	if err != nil {
		return nil, fmt.Errorf("load teletravail document: %w", err)
	}

	docs := map[domain.Domain]string{
		domain.DomainTraining:   formation,
		domain.DomainRemoteWork: strings.TrimSpace(string(teletravail)),
	}
	return New(catalog.Chapters, bodies, docs)
}

func loadFormation(path string) (string, error) {
	var doc map[string]any
	if err := readYAML(path, &doc); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
