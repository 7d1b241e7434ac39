// Package i18n translates response messages into the locales the service
// ships catalogs for.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	DefaultLocale        = "en"
	AcceptLanguageHeader = "Accept-Language"
)

//go:embed locales/*.json
var locales embed.FS

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys against per-locale catalogs and
// negotiates a locale from Accept-Language.
type Translator struct {
	catalogs map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// NewTranslator loads the embedded catalogs. DefaultLocale is always the
// first tag offered to the matcher, so it wins when nothing else does.
func NewTranslator() *Translator {
	t, err := load(locales)
	if err != nil {
		panic(err)
	}
	return t
}

func load(fsys embed.FS) (*Translator, error) {
	files, err := fsys.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	t := &Translator{catalogs: make(map[string]map[string]string, len(files))}
	t.tags = append(t.tags, language.MustParse(DefaultLocale))
	for _, f := range files {
		raw, err := fsys.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			return nil, err
		}
		var catalog map[string]string
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("locale %s: %w", f.Name(), err)
		}

		locale := strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", f.Name(), err)
		}
		t.catalogs[locale] = catalog
		if locale != DefaultLocale {
			t.tags = append(t.tags, tag)
		}
	}
	if _, ok := t.catalogs[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing %s catalog", DefaultLocale)
	}
	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

// GetTranslator returns the process-wide translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns key's message in locale, then in DefaultLocale, then the
// key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.catalogs[locale][key]; ok {
		return msg
	}
	if msg, ok := t.catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Locales lists the supported locales, DefaultLocale first.
func (t *Translator) Locales() []string {
	out := make([]string, len(t.tags))
	for i, tag := range t.tags {
		out[i] = tag.String()
	}
	return out
}

// Match picks the best supported locale for an Accept-Language value.
func (t *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLocale
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return DefaultLocale
	}
	_, idx, conf := t.matcher.Match(prefs...)
	if conf == language.No {
		return DefaultLocale
	}
	return t.tags[idx].String()
}

// GetLocale negotiates the request's locale from its Accept-Language header.
func GetLocale(c *gin.Context) string {
	return GetTranslator().Match(c.GetHeader(AcceptLanguageHeader))
}
