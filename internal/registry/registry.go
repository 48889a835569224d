package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/dnsprober/internal/domain"
	"github.com/hamed0406/dnsprober/internal/validate"
)

// Catalog is the process-wide provider list. It is built once at startup
// and read-only afterwards, so unsynchronized concurrent reads are safe.
type Catalog struct {
	providers []domain.Provider
}

// New builds a catalog from explicit entries.
func New(providers []domain.Provider) *Catalog {
	out := make([]domain.Provider, len(providers))
	copy(out, providers)
	return &Catalog{providers: out}
}

// Builtin returns the shipped catalog. Order is presentation order and is
// stable across calls and process restarts.
func Builtin() *Catalog {
	return &Catalog{providers: []domain.Provider{
		{Name: "Cloudflare", Primary: "1.1.1.1", Secondary: "1.0.0.1"},
		{Name: "Google", Primary: "8.8.8.8", Secondary: "8.8.4.4"},
		{Name: "Quad9", Primary: "9.9.9.9", Secondary: "149.112.112.112"},
		{Name: "OpenDNS", Primary: "208.67.222.222", Secondary: "208.67.220.220"},
		{Name: "AdGuard", Primary: "94.140.14.14", Secondary: "94.140.15.15"},
	}}
}

// List projects the catalog into a fresh slice; the catalog itself is
// never exposed for mutation.
func (c *Catalog) List() []domain.Provider {
	out := make([]domain.Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Lookup finds a provider by name, case-insensitively.
func (c *Catalog) Lookup(name string) (domain.Provider, bool) {
	for _, p := range c.providers {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return domain.Provider{}, false
}

type catalogFile struct {
	Providers []domain.Provider `yaml:"providers"`
}

// WithFile returns a new catalog overlaid with entries from a YAML file.
// An entry whose name matches an existing one replaces it in place;
// unknown names append in file order. Every address must validate.
func (c *Catalog) WithFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse providers file: %w", err)
	}

	merged := c.List()
	for _, p := range f.Providers {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("provider with empty name in %s", path)
		}
		if !validate.Address(p.Primary) {
			return nil, fmt.Errorf("provider %q: invalid primary address %q", p.Name, p.Primary)
		}
		if p.Secondary != "" && !validate.Address(p.Secondary) {
			return nil, fmt.Errorf("provider %q: invalid secondary address %q", p.Name, p.Secondary)
		}
		replaced := false
		for i := range merged {
			if strings.EqualFold(merged[i].Name, p.Name) {
				merged[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, p)
		}
	}
	return &Catalog{providers: merged}, nil
}
