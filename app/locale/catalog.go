package locale

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/locales"
	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_BR_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

type catalog struct {
	translator       func() locales.Translator
	registerDefaults func(v *validator.Validate, trans ut.Translator) error
	messages         map[string]string
	longDate         func(loc locales.Translator, t time.Time) string
	past, future     string
	magnitudes       []humanize.RelTimeMagnitude
}

var catalogs = map[string]*catalog{
	"pt_BR": ptBR,
}

var ptBR = &catalog{
	translator:       pt_BR.New,
	registerDefaults: pt_BR_translations.RegisterDefaultTranslations,
	messages: map[string]string{
		FormHeading:     "Deixe seu feedback",
		FormPlaceholder: "Deixe um comentário",
		FormPublish:     "Publicar",
		FormUpdateDraft: "Atualizar rascunho",
		CommentDelete:   "Apagar comentário",
		CommentsEmpty:   "Nenhum comentário ainda",
		FieldRequired:   "Esse campo é obrigatório!",
		PostNotFound:    "Publicação não encontrada",
		FeedTitle:       "Feed",
	},
	// d 'de' LLLL 'às' HH:mm'h'
	longDate: func(loc locales.Translator, t time.Time) string {
		return fmt.Sprintf("%d de %s às %02d:%02dh", t.Day(), loc.MonthWide(t.Month()), t.Hour(), t.Minute())
	},
	past:   "há",
	future: "em",
	// Each entry applies while the distance is below D. Counts are the
	// distance divided by DivBy, rounded down.
	magnitudes: append([]humanize.RelTimeMagnitude{
		{D: 30 * time.Second, Format: "%s menos de um minuto", DivBy: time.Second},
		{D: 2 * time.Minute, Format: "%s 1 minuto", DivBy: time.Minute},
		{D: 45 * time.Minute, Format: "%s %d minutos", DivBy: time.Minute},
		{D: 2 * time.Hour, Format: "%s cerca de 1 hora", DivBy: time.Hour},
		{D: day, Format: "%s cerca de %d horas", DivBy: time.Hour},
		{D: 2 * day, Format: "%s 1 dia", DivBy: day},
		{D: month, Format: "%s %d dias", DivBy: day},
		{D: 45 * day, Format: "%s cerca de 1 mês", DivBy: month},
		{D: 2 * month, Format: "%s cerca de 2 meses", DivBy: month},
		{D: year, Format: "%s %d meses", DivBy: month},
	}, ptBRYears(100)...),
}

// ptBRYears builds the year magnitudes up to limit years. Within each year
// the wording follows the months past it: under 3 "cerca de", under 9
// "mais de", then "quase" the next year.
func ptBRYears(limit int) []humanize.RelTimeMagnitude {
	plural := func(n int) string {
		if n == 1 {
			return "1 ano"
		}
		return fmt.Sprintf("%d anos", n)
	}

	mags := make([]humanize.RelTimeMagnitude, 0, 3*limit+1)
	for n := 1; n <= limit; n++ {
		start := time.Duration(n) * year
		mags = append(mags,
			humanize.RelTimeMagnitude{D: start + 3*month, Format: "%s cerca de " + plural(n), DivBy: year},
			humanize.RelTimeMagnitude{D: start + 9*month, Format: "%s mais de " + plural(n), DivBy: year},
			humanize.RelTimeMagnitude{D: start + year, Format: "%s quase " + plural(n+1), DivBy: year},
		)
	}
	return append(mags, humanize.RelTimeMagnitude{D: math.MaxInt64, Format: "%s mais de %d anos", DivBy: year})
}
