package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-heroform/pkg/submission"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a key is
// looked up without a Translator configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. args carries a {"default": fallback} map as its first element
// when a fallback exists.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	if len(args) > 0 {
		if defaults, ok := args[0].(map[string]any); ok {
			if fallback, ok := defaults["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// Translation keys for the fixed form chrome.
const (
	KeyHeading          = "hero.form.heading"
	KeySubmit           = "hero.form.submit"
	KeyBack             = "hero.form.back"
	KeyAddSuperpower    = "hero.form.add_superpower"
	KeyRemoveSuperpower = "hero.form.remove_superpower"
	KeyNoticeSuccess    = "hero.notice.success"
)

// LocalizeView translates headings, button labels and field labels in place.
// Nothing changes when no Translator is configured.
func LocalizeView(view *View, opts RenderOptions) {
	if view == nil || opts.Translator == nil {
		return
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	tr := func(key, fallback string) string {
		return translate(opts.Locale, key, fallback, opts.Translator, onMissing)
	}

	if view.Heading != "" {
		view.Heading = tr(KeyHeading, view.Heading)
	}
	view.SubmitLabel = tr(KeySubmit, view.SubmitLabel)
	view.BackLabel = tr(KeyBack, view.BackLabel)
	view.AddLabel = tr(KeyAddSuperpower, view.AddLabel)
	view.RemoveLabel = tr(KeyRemoveSuperpower, view.RemoveLabel)

	for i := range view.Fields {
		if key := strings.TrimSpace(view.Fields[i].LabelKey); key != "" {
			view.Fields[i].Label = tr(key, view.Fields[i].Label)
		}
	}
	if view.Notice != nil && view.Notice.Kind == submission.NoticeSuccess {
		notice := *view.Notice
		notice.Message = tr(KeyNoticeSuccess, notice.Message)
		view.Notice = &notice
	}
}

// TemplateI18nFuncs returns helpers for template engines:
//
//	translate(locale, key, ...args) string
//	current_locale(locale) string
func TemplateI18nFuncs(t Translator, onMissing MissingTranslationHandler) map[string]any {
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return map[string]any{
		"translate": func(localeSrc any, key string, params ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			locale := resolveLocale(localeSrc)
			if t == nil {
				return onMissing(locale, key, params, ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, params...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, params, err)
			}
			return msg
		},
		"current_locale": resolveLocale,
	}
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	var err error
	if t == nil {
		err = ErrMissingTranslator
	} else {
		var result string
		result, err = t.Translate(locale, key)
		if err == nil && strings.TrimSpace(result) != "" {
			return result
		}
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func resolveLocale(src any) string {
	switch value := src.(type) {
	case nil:
		return ""
	case string:
		return value
	case map[string]any:
		if locale, ok := value["locale"]; ok && locale != nil {
			return strings.TrimSpace(fmt.Sprint(locale))
		}
	case map[string]string:
		return value["locale"]
	}
	return ""
}
