// Package profile loads named validator chains from YAML or TOML files.
//
// A profile file looks like:
//
//	profiles:
//	  retail_sku:
//	    description: Shelf barcodes
//	    validators:
//	      - name: notempty
//	        break_chain_on_failure: true
//	      - name: barcode
//	        options:
//	          symbology: ean13
package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/compose"
	"github.com/lithictech/go-assay/validator"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownProfile    = errors.New("unknown profile")
	ErrUnsupportedFormat = errors.New("unsupported profile format")

	// ErrDuplicateProfile is returned when two profile names differ only by case.
	ErrDuplicateProfile = errors.New("duplicate profile")
)

type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "%q", path)
	}
}

type fileProfile struct {
	Description string       `yaml:"description" toml:"description" validate:"max=500"`
	Validators  []check.Spec `yaml:"validators" toml:"validators" validate:"min=1"`
}

type file struct {
	Profiles map[string]fileProfile `yaml:"profiles" toml:"profiles"`
}

// Profile is a named chain.
type Profile struct {
	Name        string
	Description string
	Specs       []check.Spec
	chain       *compose.Chain
}

func (p *Profile) Validate(value interface{}, vctx check.Context) check.Outcome {
	return p.chain.Validate(value, vctx)
}

// Set is a group of profiles. It is read-only once loaded.
type Set struct {
	profiles map[string]*Profile
}

// Load reads a profile file, choosing the format by extension.
func Load(path string, r check.Resolver) (*Set, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading profiles")
	}
	s, err := Parse(data, format, r)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return s, nil
}

// Parse builds every profile in data. Every profile is tried,
// and all configuration errors are returned together.
func Parse(data []byte, format Format, r check.Resolver) (*Set, error) {
	var f file
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, "decoding yaml profiles")
		}
	case TOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(err, "decoding toml profiles")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("unknown profile keys: %v", undecoded)
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	set := &Set{profiles: make(map[string]*Profile, len(f.Profiles))}
	var result error
	seen := make(map[string]string, len(f.Profiles))
	for _, name := range sortedKeys(f.Profiles) {
		key := strings.ToLower(name)
		if other, ok := seen[key]; ok {
			result = multierror.Append(result, errors.Wrapf(ErrDuplicateProfile, "profile %s collides with %s", name, other))
			continue
		}
		seen[key] = name
		fp := f.Profiles[name]
		if err := validator.Validate(fp); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "profile %s", name))
			continue
		}
		chain, err := compose.BuildChain(r, fp.Validators)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "profile %s", name))
			continue
		}
		set.profiles[key] = &Profile{
			Name:        name,
			Description: fp.Description,
			Specs:       fp.Validators,
			chain:       chain,
		}
	}
	if result != nil {
		return nil, result
	}
	return set, nil
}

// Empty returns a Set with no profiles.
func Empty() *Set {
	return &Set{profiles: map[string]*Profile{}}
}

// Get finds a profile by its case-insensitive name.
func (s *Set) Get(name string) (*Profile, error) {
	if p, ok := s.profiles[strings.ToLower(name)]; ok {
		return p, nil
	}
	return nil, errors.Wrapf(ErrUnknownProfile, "%q", name)
}

// Profiles returns every profile, sorted by name.
func (s *Set) Profiles() []*Profile {
	result := make([]*Profile, 0, len(s.profiles))
	for _, k := range sortedKeys(s.profiles) {
		result = append(result, s.profiles[k])
	}
	return result
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
