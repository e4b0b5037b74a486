// Package locale resolves message keys to localized strings.
package locale

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// Tables maps a BCP 47 language tag to key → message overrides.
type Tables map[string]map[string]string

// Catalog renders messages for one language, falling back to English.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New builds a catalog for lang. Keys missing from the matched language
// use the English defaults.
func New(lang string, tables Tables) (*Catalog, error) {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		if err := builder.SetString(language.English, key, pattern(key, msg)); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	available := []language.Tag{language.English}
	for _, name := range sortedKeys(tables) {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", name, err)
		}
		// Lookups walk parent tags only, so each language carries the defaults.
		for key, msg := range english {
			if err := builder.SetString(tag, key, pattern(key, msg)); err != nil {
				return nil, fmt.Errorf("set default %s/%s: %w", name, key, err)
			}
		}
		for key, msg := range tables[name] {
			if err := builder.SetString(tag, key, pattern(key, msg)); err != nil {
				return nil, fmt.Errorf("set %s/%s: %w", name, key, err)
			}
		}
		if tag != language.English {
			available = append(available, tag)
		}
	}

	tag := language.English
	if lang != "" {
		requested, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", lang, err)
		}
		_, idx, conf := language.NewMatcher(available).Match(requested)
		if conf != language.No {
			tag = available[idx]
		}
	}

	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// Default returns the English catalog.
func Default() *Catalog {
	c, err := New("", nil)
	if err != nil {
		panic(err)
	}
	return c
}

// Tag returns the language the catalog resolved to.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Localize formats the message for key with args.
func (c *Catalog) Localize(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

// LoadFile reads YAML override tables. Error messages take their coin or
// amount as %s; any other % is shown as is.
//
//	de:
//	  send.confirmation.amount: Betrag
func LoadFile(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale file: %w", err)
	}
	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse locale file: %w", err)
	}
	return tables, nil
}

// pattern turns a message into a printer format. A literal % in a message
// that takes no arguments is escaped.
func pattern(key, msg string) string {
	if formatKeys[key] {
		return msg
	}
	return strings.ReplaceAll(msg, "%", "%%")
}

func sortedKeys(tables Tables) []string {
	keys := make([]string, 0, len(tables))
	for k := range tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
