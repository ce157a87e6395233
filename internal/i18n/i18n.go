// internal/i18n/i18n.go
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var (
	instance *I18n
	mu       sync.RWMutex
)

// Initialize loads the bundled locales. Calling it again replaces the
// default language.
func Initialize(defaultLang string) error {
	i, err := New(defaultLang)
	if err != nil {
		return err
	}

	mu.Lock()
	instance = i
	mu.Unlock()
	return nil
}

func New(defaultLang string) (*I18n, error) {
	if defaultLang == "" {
		defaultLang = "en"
	}

	i := &I18n{
		translations: make(map[string]map[string]string),
		defaultLang:  defaultLang,
	}
	if err := i.loadTranslations(); err != nil {
		return nil, err
	}
	if _, ok := i.translations[defaultLang]; !ok {
		return nil, fmt.Errorf("no locale bundled for default language %q", defaultLang)
	}
	return i, nil
}

func (i *I18n) loadTranslations() error {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return fmt.Errorf("failed to list locales: %w", err)
	}

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".json")

		data, err := localeFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return fmt.Errorf("failed to unmarshal locale file %s: %w", entry.Name(), err)
		}

		i.mu.Lock()
		i.translations[lang] = translations
		i.mu.Unlock()
	}

	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if text, ok := i.lookup(lang, key); ok {
		return format(text, args)
	}
	if lang != i.defaultLang {
		if text, ok := i.lookup(i.defaultLang, key); ok {
			return format(text, args)
		}
	}

	// Return key if no translation found
	return key
}

func (i *I18n) lookup(lang, key string) (string, bool) {
	translations, ok := i.translations[lang]
	if !ok {
		return "", false
	}
	text, ok := translations[key]
	return text, ok
}

func format(text string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(text, args...)
	}
	return text
}

// Languages returns the bundled languages, default first.
func (i *I18n) Languages() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	langs := make([]string, 0, len(i.translations))
	for lang := range i.translations {
		if lang != i.defaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return append([]string{i.defaultLang}, langs...)
}

// Match picks the best bundled language for an Accept-Language header.
func (i *I18n) Match(acceptLanguage string) string {
	langs := i.Languages()
	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tags = append(tags, language.Make(lang))
	}

	preferred, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(preferred) == 0 {
		return langs[0]
	}

	_, index, confidence := language.NewMatcher(tags).Match(preferred...)
	if confidence == language.No {
		return langs[0]
	}
	return langs[index]
}

func get() *I18n {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

// Global functions
func T(lang, key string, args ...interface{}) string {
	if i := get(); i != nil {
		return i.T(lang, key, args...)
	}
	return key
}

func Match(acceptLanguage string) string {
	if i := get(); i != nil {
		return i.Match(acceptLanguage)
	}
	return "en"
}

func DefaultLanguage() string {
	if i := get(); i != nil {
		return i.defaultLang
	}
	return "en"
}
