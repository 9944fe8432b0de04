// Package sources describes the raw power-plant registries and the
// sources.yaml file that tells where each of them lives.
//
// Example sources.yaml:
//
//	datasets:
//	  - name: CARMA
//	    path: ~/data/powerplants/carma.csv
//	  - name: GEO
//	    path: https://example.org/registries/geo.csv
//	    index_column: GEO_Assigned_Identification_Number
package sources

import (
	"context"
	"slices"
	"strings"

	"github.com/gnames/ppcollect/pkg/table"
)

// Dataset is the name of a raw registry.
type Dataset string

const (
	CARMA Dataset = "CARMA"
	GEO   Dataset = "GEO"
	OPSD  Dataset = "OPSD"
	WRI   Dataset = "WRI"
	ESE   Dataset = "ESE"
	FIAS  Dataset = "FIAS"
)

// AllDatasets lists the registries ppcollect knows about.
var AllDatasets = []Dataset{CARMA, GEO, OPSD, WRI, ESE, FIAS}

// ParseDataset converts a case-insensitive name to a Dataset.
func ParseDataset(s string) (Dataset, bool) {
	d := Dataset(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(AllDatasets, d) {
		return d, true
	}
	return "", false
}

// Registry gives access to raw registries. Each call loads the table
// anew.
type Registry interface {
	Raw(ctx context.Context, ds Dataset) (*table.Table, error)
}

// SourcesConfig represents the complete sources.yaml configuration file.
type SourcesConfig struct {
	// Datasets is the list of raw registries.
	Datasets []DatasetConfig `yaml:"datasets"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []string `yaml:"-"`
}

// DatasetConfig tells where a raw registry lives.
type DatasetConfig struct {
	// Name is one of CARMA, GEO, OPSD, WRI, ESE, FIAS.
	Name string `yaml:"name"`

	// Path is a local file or an http(s) URL of a CSV file.
	// A leading "~/" is expanded to the home directory.
	Path string `yaml:"path"`

	// IndexColumn is the column used as row index. When empty, rows are
	// numbered from 0.
	IndexColumn string `yaml:"index_column,omitempty"`
}

// IsURL reports whether the path is a remote location.
func (d DatasetConfig) IsURL() bool {
	return strings.HasPrefix(d.Path, "http://") ||
		strings.HasPrefix(d.Path, "https://")
}

// Find returns the configuration of the dataset.
func (c *SourcesConfig) Find(ds Dataset) (DatasetConfig, bool) {
	for _, v := range c.Datasets {
		if d, ok := ParseDataset(v.Name); ok && d == ds {
			return v, true
		}
	}
	return DatasetConfig{}, false
}
