package apierrors

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"github.com/mew228/Flowstate/pkg/translator"
)

// JsonErr is the body of every failed API response.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

// Err carries the HTTP code, the untranslated message key for clients that
// localize on their side, and the message in the request language.
type Err struct {
	Code    int    `json:"code"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Key: %s, Message: %s", e.ErrDetails.Code, e.ErrDetails.Key, e.ErrDetails.Message)
}

// CreateError builds a JsonErr whose message is msgKey translated to lang.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return CreateErrorWithData(code, msgKey, lang, nil)
}

// CreateErrorWithData is CreateError for messages with template fields.
func CreateErrorWithData(code int, msgKey string, lang string, data map[string]any) JsonErr {
	return JsonErr{ErrDetails: Err{
		Code:    code,
		Key:     msgKey,
		Message: translate(msgKey, lang, data),
	}}
}

// GetTransErrorMsg translates msgKey to lang, falling back to English and
// then to the key itself.
func GetTransErrorMsg(msgKey string, lang string) string {
	return translate(msgKey, lang, nil)
}

func translate(msgKey, lang string, data map[string]any) string {
	if translator.Translator == nil {
		return msgKey
	}

	l := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: msgKey, TemplateData: data})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
