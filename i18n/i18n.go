// Package i18n отвечает за выбор локали (ko/en) и каталоги сообщений.
package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	LangKo = "ko"
	LangEn = "en"

	DefaultLang = LangKo
	CookieName  = "lang"
)

var supported = []language.Tag{language.Korean, language.English}

var matcher = language.NewMatcher(supported)

type contextKey string

const langContextKey contextKey = "lang"

// Normalize приводит произвольный тег к одному из поддерживаемых языков.
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLang
	}
	t, err := language.Parse(tag)
	if err != nil {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return DefaultLang
	}
	return langOf(supported[idx])
}

// IsSupported сообщает, является ли tag одним из явно поддерживаемых кодов.
func IsSupported(tag string) bool {
	return tag == LangKo || tag == LangEn
}

// Resolve определяет язык запроса: ?lang= > cookie > Accept-Language > ko.
func Resolve(r *http.Request) string {
	if q := r.URL.Query().Get("lang"); IsSupported(q) {
		return q
	}
	if c, err := r.Cookie(CookieName); err == nil && IsSupported(c.Value) {
		return c.Value
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		tags, _, err := language.ParseAcceptLanguage(accept)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				return langOf(supported[idx])
			}
		}
	}
	return DefaultLang
}

func langOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langContextKey, lang)
}

func FromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langContextKey).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

// Middleware кладёт язык запроса в контекст и отдаёт Content-Language.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := Resolve(r)
		w.Header().Set("Content-Language", lang)
		next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
	})
}

// Translator форматирует сообщения каталога на нужном языке.
type Translator struct {
	catalog  *catalog.Builder
	printers map[string]*message.Printer
}

func NewTranslator() (*Translator, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.Korean))
	for key, texts := range messages {
		if err := b.SetString(language.Korean, key, texts.ko); err != nil {
			return nil, err
		}
		if err := b.SetString(language.English, key, texts.en); err != nil {
			return nil, err
		}
	}
	return &Translator{
		catalog: b,
		printers: map[string]*message.Printer{
			LangKo: message.NewPrinter(language.Korean, message.Catalog(b)),
			LangEn: message.NewPrinter(language.English, message.Catalog(b)),
		},
	}, nil
}

// T возвращает перевод key; аргументы подставляются как в fmt.Sprintf.
func (t *Translator) T(lang, key string, args ...interface{}) string {
	p, ok := t.printers[lang]
	if !ok {
		p = t.printers[DefaultLang]
	}
	return p.Sprintf(key, args...)
}

// Messages возвращает весь каталог для фронтенда (без подстановки аргументов).
func (t *Translator) Messages(lang string) map[string]string {
	out := make(map[string]string, len(messages))
	for key, texts := range messages {
		if lang == LangEn {
			out[key] = texts.en
		} else {
			out[key] = texts.ko
		}
	}
	return out
}
