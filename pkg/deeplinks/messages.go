package deeplinks

import (
	"embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func messageBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = err
			return
		}
		for _, entry := range entries {
			if _, err := b.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
				bundleErr = err
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// NewLocalizer returns a localizer for user-facing error messages. langs
// are BCP 47 tags or Accept-Language values, in order of preference;
// English is the fallback.
func NewLocalizer(langs ...string) (*i18n.Localizer, error) {
	b, err := messageBundle()
	if err != nil {
		return nil, err
	}
	return i18n.NewLocalizer(b, langs...), nil
}

var defaultMessages = map[ErrorKind]*i18n.Message{
	KindPatternInvalid:    {ID: "PatternInvalid", Other: "The link route {{.Path}} is misconfigured."},
	KindParameterPosition: {ID: "ParameterPosition", Other: "The link route parameter {{.Token}} is misplaced."},
	KindParameterDecode:   {ID: "ParameterDecode", Other: "This link is missing information or contains invalid values."},
	KindHandlerFailed:     {ID: "HandlerFailed", Other: "This link could not be opened."},
}

// Localize renders a message suitable for end users. A nil localizer, or
// one that cannot render the message, yields the English text.
func (e *ProcessingError) Localize(localizer *i18n.Localizer) string {
	message, ok := defaultMessages[e.Kind]
	if !ok {
		return e.Error()
	}

	data := map[string]string{
		"Path":  e.Path.String(),
		"Token": e.Token,
	}

	if localizer == nil {
		var err error
		if localizer, err = NewLocalizer(); err != nil {
			return e.Error()
		}
	}

	text, err := localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: message,
		TemplateData:   data,
	})
	if err != nil {
		return e.Error()
	}
	return text
}
