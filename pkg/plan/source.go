package plan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source loads a plan catalog. Implementations must return a validated
// catalog; the service caches the result for its lifetime.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
}

type inMemSource struct {
	catalog Catalog
}

// NewInMemSource returns a Source backed by a static catalog.
func NewInMemSource(c Catalog) Source {
	return &inMemSource{catalog: c}
}

func (s *inMemSource) Load(_ context.Context) (Catalog, error) {
	return s.catalog, nil
}

type fileSource struct {
	path string
}

// NewFileSource returns a Source that reads the catalog from a YAML file.
// The file holds a list of plans:
//
//	- tier: free
//	  name: Free
//	  board_limit: 3
//	  member_limit: 5
//	  storage_limit_mb: 10
//	  features: [basic_templates, email_support]
//	  price: {amount: 0, currency: USD}
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(_ context.Context) (Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadPlans, err)
	}

	var plans []Plan
	if err := yaml.Unmarshal(raw, &plans); err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadPlans,
			fmt.Errorf("parse %s: %w", s.path, err))
	}

	c, err := NewCatalog(plans...)
	if err != nil {
		return Catalog{}, errors.Join(ErrFailedToLoadPlans, err)
	}
	return c, nil
}
