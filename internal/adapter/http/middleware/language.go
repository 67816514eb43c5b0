package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/mew228/Flowstate/pkg/translator"
)

const langKey = "lang"

var (
	supportedLanguages = []string{translator.LanguageEn, translator.LanguageFr}
	languageMatcher    = language.NewMatcher([]language.Tag{language.English, language.French})
)

// LanguageMiddleware picks the best supported language from Accept-Language,
// falling back to English.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, matchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func matchLanguage(header string) string {
	if header == "" {
		return translator.LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.LanguageEn
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return translator.LanguageEn
	}
	return supportedLanguages[index]
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
