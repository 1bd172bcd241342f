// Package i18n resolves user-facing strings from the embedded message files.
package i18n

import (
	"embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var messageFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	once      sync.Once
	initErr   error
)

func load() {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	entries, err := messageFS.ReadDir(".")
	if err != nil {
		initErr = err
		return
	}
	for _, entry := range entries {
		data, err := messageFS.ReadFile(entry.Name())
		if err != nil {
			initErr = err
			return
		}
		if _, err := b.ParseMessageFileBytes(data, entry.Name()); err != nil {
			initErr = err
			return
		}
	}
	mu.Lock()
	bundle = b
	localizer = i18n.NewLocalizer(b, language.English.String())
	mu.Unlock()
}

// Init loads the embedded messages and selects the language given by code.
// An empty code keeps English.
func Init(code string) error {
	once.Do(load)
	if initErr != nil {
		return initErr
	}
	if code == "" {
		return nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return err
	}
	mu.Lock()
	localizer = i18n.NewLocalizer(bundle, tag.String(), language.English.String())
	mu.Unlock()
	return nil
}

func current() *i18n.Localizer {
	once.Do(load)
	mu.RLock()
	defer mu.RUnlock()
	return localizer
}

// T returns the message for id, or id itself when it is unknown.
func T(id string) string {
	return TData(id, nil)
}

// TData renders the message for id with template data.
func TData(id string, data map[string]interface{}) string {
	l := current()
	if l == nil {
		return id
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}

// TPlural renders the plural form of id selected by count.
func TPlural(id string, count int) string {
	l := current()
	if l == nil {
		return id
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]interface{}{"Count": count},
	})
	if err != nil {
		return id
	}
	return msg
}
