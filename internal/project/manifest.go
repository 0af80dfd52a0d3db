// Package project loads the optional lumen.toml project manifest, which
// supplies default values for the compiler flags. Explicit command-line
// flags always override manifest values.
package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the manifest looked for in the working directory when no
// --project flag is given.
const DefaultFile = "lumen.toml"

var (
	// ErrManifestNotFound indicates an explicitly requested manifest is missing.
	ErrManifestNotFound = errors.New("project manifest not found")

	// ErrManifestInvalid indicates the manifest could not be parsed.
	ErrManifestInvalid = errors.New("invalid project manifest")
)

// Manifest mirrors the compiler's flag surface.
type Manifest struct {
	NoPrelude        bool     `toml:"no_prelude"`
	NoTCO            bool     `toml:"no_tco"`
	NoMagicDo        bool     `toml:"no_magic_do"`
	NoOpts           bool     `toml:"no_opts"`
	NoPrefix         bool     `toml:"no_prefix"`
	VerboseErrors    bool     `toml:"verbose_errors"`
	Main             string   `toml:"main"`
	BrowserNamespace string   `toml:"browser_namespace"`
	Modules          []string `toml:"modules"`
	CodegenModules   []string `toml:"codegen_modules"`
	Output           string   `toml:"output"`
	Externs          string   `toml:"externs"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read project manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestInvalid, path, err)
	}
	return &m, nil
}

// LoadDefault loads DefaultFile from the working directory if present. A
// missing default manifest is not an error; it returns an empty manifest.
func LoadDefault() (*Manifest, error) {
	m, err := Load(DefaultFile)
	if errors.Is(err, ErrManifestNotFound) {
		return &Manifest{}, nil
	}
	return m, err
}
