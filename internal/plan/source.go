package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source loads the plan catalog at startup.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
}

// StaticSource serves a fixed catalog, normally Default().
type StaticSource struct {
	catalog Catalog
}

func NewStaticSource(c Catalog) *StaticSource {
	return &StaticSource{catalog: c}
}

func (s *StaticSource) Load(ctx context.Context) (Catalog, error) {
	if len(s.catalog) == 0 {
		return nil, fmt.Errorf("%w: empty static catalog", ErrFailedToLoadCatalog)
	}
	return s.catalog, nil
}

// FileSource loads the catalog from a YAML file, allowing pricing changes
// without a rebuild. Limits in the file are typed; feature strings are
// display-only there and are never parsed.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(ctx context.Context) (Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	var doc struct {
		Plans Catalog `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}
	if len(doc.Plans) == 0 {
		return nil, fmt.Errorf("%w: no plans in %s", ErrFailedToLoadCatalog, s.path)
	}

	for _, p := range doc.Plans {
		if p.Tier == "" {
			return nil, fmt.Errorf("%w: plan %q has no tier", ErrFailedToLoadCatalog, p.Name)
		}
	}
	return doc.Plans, nil
}
