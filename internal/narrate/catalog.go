// Package narrate turns simulation events into text: story or terse
// narration, the end-of-run report and structured log lines.
package narrate

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/Thokas/zombie-survival/internal/models"
)

// BaseLocale must define every message key.
const BaseLocale = models.LocaleEnglish

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

//go:embed locales/*.yaml
var embeddedLocales embed.FS

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Catalog holds the narration messages of every locale.
type Catalog struct {
	messages map[string]map[string]string
	builder  *catalog.Builder
}

// Default returns the embedded catalog. It panics if the embedded files
// are malformed, which the package tests rule out.
func Default() *Catalog {
	loadOnce.Do(func() {
		loaded, loadErr = LoadFromFS(embeddedLocales)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("narrate: load embedded catalog: %v", loadErr))
	}
	return loaded
}

// LoadFromFS reads locales/*.yaml from fsys.
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		messages: map[string]map[string]string{},
		builder:  catalog.NewBuilder(catalog.Fallback(language.English)),
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := c.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := c.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return c, nil
}

func (c *Catalog) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
		return fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
	}
	if _, exists := c.messages[locale]; exists {
		return fmt.Errorf("catalog %s: locale %q already defined", p, locale)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale tag %q: %w", p, locale, err)
	}

	msgs := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if err := c.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("catalog %s: set %q: %w", p, key, err)
		}
		msgs[key] = value
	}
	c.messages[locale] = msgs
	return nil
}

// Locales lists the available locales.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// HasLocale reports whether locale has messages.
func (c *Catalog) HasLocale(locale string) bool {
	_, ok := c.messages[locale]
	return ok
}

// Keys lists the message keys of locale.
func (c *Catalog) Keys(locale string) []string {
	msgs := c.messages[locale]
	out := make([]string, 0, len(msgs))
	for key := range msgs {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Printer formats catalog keys for locale. Unknown locales get English.
func (c *Catalog) Printer(locale string) *message.Printer {
	tag := language.English
	if c.HasLocale(locale) {
		tag = language.Make(locale)
	}
	return message.NewPrinter(tag, message.Catalog(c.builder))
}

// Printer formats keys of the embedded catalog.
func Printer(locale string) *message.Printer {
	return Default().Printer(locale)
}
