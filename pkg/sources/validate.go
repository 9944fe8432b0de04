package sources

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for errors. Datasets that are not
// configured produce warnings, because only the recompute path needs them.
func (c *SourcesConfig) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("no datasets specified in configuration")
	}

	seen := make(map[Dataset]struct{})
	for i := range c.Datasets {
		ds, err := c.Datasets[i].Validate()
		if err != nil {
			return fmt.Errorf("dataset %d: %w", i+1, err)
		}
		if _, ok := seen[ds]; ok {
			return fmt.Errorf("dataset %d: %s is listed more than once", i+1, ds)
		}
		seen[ds] = struct{}{}
	}

	for _, ds := range AllDatasets {
		if _, ok := seen[ds]; !ok {
			c.Warnings = append(c.Warnings,
				fmt.Sprintf("dataset %s is not configured", ds))
		}
	}
	return nil
}

// Validate checks a single dataset entry and returns its parsed name.
// File system validation (file existence) is deferred to the I/O layer.
func (d *DatasetConfig) Validate() (Dataset, error) {
	ds, ok := ParseDataset(d.Name)
	if !ok {
		names := make([]string, len(AllDatasets))
		for i, v := range AllDatasets {
			names[i] = string(v)
		}
		return "", fmt.Errorf(
			"unknown dataset name '%s', valid names are: %s",
			d.Name, strings.Join(names, ", "),
		)
	}

	if strings.TrimSpace(d.Path) == "" {
		return "", fmt.Errorf("path of %s is required", ds)
	}
	return ds, nil
}
