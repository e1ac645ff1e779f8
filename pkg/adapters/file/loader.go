package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/locus/pkg/domain"
)

// Loader implements ports.DomainLoader and ports.CorpusLoader over YAML or
// JSON files. The format is picked from the file extension; anything other
// than ".json" is read as YAML. Files are re-read on every load.
type Loader struct {
	DomainPath string
	CorpusPath string
}

// NewLoader creates a loader for the given paths. Either may be empty when
// the loader only serves one port.
func NewLoader(domainPath, corpusPath string) *Loader {
	return &Loader{DomainPath: domainPath, CorpusPath: corpusPath}
}

// LoadDomain reads and converts the domain file.
func (l *Loader) LoadDomain(ctx context.Context) (*domain.Domain, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Canceled(err)
	}
	return LoadDomain(l.DomainPath)
}

// LoadCorpus reads and converts the corpus file.
func (l *Loader) LoadCorpus(ctx context.Context) (*domain.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Canceled(err)
	}
	return LoadCorpus(l.CorpusPath)
}

// LoadDomain reads a domain description from path.
func LoadDomain(path string) (*domain.Domain, error) {
	var f DomainFile
	if err := decode(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load domain: %w", err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f.Domain()
}

// LoadCorpus reads a trace corpus from path.
func LoadCorpus(path string) (*domain.Corpus, error) {
	var f CorpusFile
	if err := decode(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	return f.Corpus()
}

func decode(path string, v any) error {
	if path == "" {
		return fmt.Errorf("no file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
