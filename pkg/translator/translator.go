package translator

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

//go:embed translation/*.toml
var embedded embed.FS

type Config struct {
	// TranslationFolder overrides the bundled messages when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	var source fs.FS
	if cfg.TranslationFolder == "" {
		sub, err := fs.Sub(embedded, "translation")
		if err != nil {
			zap.L().Error("failed to open bundled translations", zap.Error(err))
			return
		}
		source = sub
	} else {
		source = os.DirFS(cfg.TranslationFolder)
	}

	lstFiles, err := fs.ReadDir(source, ".")
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		lang := strings.TrimSuffix(f.Name(), ".toml")
		if len(cfg.SupportedLanguages) > 0 && !slices.Contains(cfg.SupportedLanguages, lang) {
			continue
		}

		if _, err := Translator.LoadMessageFileFS(source, f.Name()); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}
