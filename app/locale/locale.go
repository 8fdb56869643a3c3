// Package locale holds the fixed-locale strings of the post card: UI
// labels, validation messages and publication date formatting.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// Message keys.
const (
	FormHeading     = "form.heading"
	FormPlaceholder = "form.placeholder"
	FormPublish     = "form.publish"
	FormUpdateDraft = "form.update_draft"
	CommentDelete   = "comment.delete"
	CommentsEmpty   = "comments.empty"
	FieldRequired   = "field.required"
	PostNotFound    = "post.not_found"
	FeedTitle       = "feed.title"
)

// ErrUnsupported is returned for a locale with no catalog.
var ErrUnsupported = errors.New("unsupported locale")

// Locale formats strings for one fixed language.
type Locale struct {
	name     string
	loc      locales.Translator
	trans    ut.Translator
	cat      *catalog
	location *time.Location
}

// New builds the locale named name (for example "pt_BR") and registers its
// validation messages on v. Dates are rendered in location; nil means UTC.
func New(name string, location *time.Location, v *validator.Validate) (*Locale, error) {
	cat, ok := catalogs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	if location == nil {
		location = time.UTC
	}

	loc := cat.translator()
	uni := ut.New(loc, loc)
	trans, found := uni.GetTranslator(loc.Locale())
	if !found {
		return nil, fmt.Errorf("%w: no translator for %s", ErrUnsupported, loc.Locale())
	}
	for key, text := range cat.messages {
		if err := trans.Add(key, text, true); err != nil {
			return nil, fmt.Errorf("adding message %s: %w", key, err)
		}
	}

	l := &Locale{
		name:     name,
		loc:      loc,
		trans:    trans,
		cat:      cat,
		location: location,
	}
	if v != nil {
		if err := l.registerValidation(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Name returns the locale name.
func (l *Locale) Name() string {
	return l.name
}

// Lang returns the locale as an HTML lang attribute value.
func (l *Locale) Lang() string {
	return strings.ReplaceAll(l.name, "_", "-")
}

// T returns the message for key, or the key itself if it is missing.
func (l *Locale) T(key string, params ...string) string {
	s, err := l.trans.T(key, params...)
	if err != nil {
		return key
	}
	return s
}

func (l *Locale) registerValidation(v *validator.Validate) error {
	if err := l.cat.registerDefaults(v, l.trans); err != nil {
		return fmt.Errorf("registering validation messages: %w", err)
	}
	err := v.RegisterTranslation("required", l.trans,
		func(ut ut.Translator) error {
			return ut.Add("required", l.cat.messages[FieldRequired], true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			s, err := ut.T("required")
			if err != nil {
				return fe.Error()
			}
			return s
		},
	)
	if err != nil {
		return fmt.Errorf("registering required message: %w", err)
	}
	return nil
}

// TranslateError renders a validation error in this locale. Errors that are
// not validation errors are returned as is.
func (l *Locale) TranslateError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(l.trans))
	}
	return strings.Join(msgs, " ")
}
