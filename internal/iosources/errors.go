package iosources

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ppcollect/pkg/errcode"
)

// SourcesConfigError creates an error for when sources.yaml
// cannot be loaded.
func SourcesConfigError(path string, err error) error {
	msg := `Cannot load sources configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Unknown or duplicate dataset names

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Use names CARMA, GEO, OPSD, WRI, ESE, FIAS`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.SourcesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load sources config: %w", err),
	}
}

// NotConfiguredError is returned when a raw registry is requested but
// sources.yaml has no entry for it.
func NotConfiguredError(dataset, path string) error {
	msg := `Raw dataset <em>%s</em> is not configured

<em>How to fix:</em>
  Add an entry to <em>%s</em>:

  datasets:
    - name: %s
      path: /path/to/file.csv`

	vars := []any{dataset, path, dataset}

	return &gn.Error{
		Code: errcode.SourcesNotConfiguredError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("dataset %s is not in %s", dataset, path),
	}
}

// FetchError is returned when a remote registry cannot be downloaded.
func FetchError(dataset, url string, err error) error {
	msg := "Cannot download dataset <em>%s</em> from <em>%s</em>"
	vars := []any{dataset, url}

	return &gn.Error{
		Code: errcode.SourcesFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to fetch %s from %s: %w", dataset, url, err),
	}
}
