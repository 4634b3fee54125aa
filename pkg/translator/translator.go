package translator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var errNotInitialized = errors.New("translator not initialized")

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".toml") {
			continue
		}
		if !isSupported(cfg.SupportedLanguages, strings.TrimSuffix(f.Name(), ".toml")) {
			zap.L().Debug("skipping unsupported translation file", zap.String("file", f.Name()))
			continue
		}

		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// Localize resolves messageID for lang, which may be a raw Accept-Language
// value. English is the fallback.
func Localize(lang, messageID string, data map[string]any) (string, error) {
	if Translator == nil {
		return "", errNotInitialized
	}

	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	return l.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
}

func isSupported(supported []string, lang string) bool {
	if len(supported) == 0 {
		return true
	}
	for _, s := range supported {
		if strings.EqualFold(s, lang) {
			return true
		}
	}
	return false
}
