package lang

import (
	"context"

	"github.com/rs/zerolog"
)

// TranslationCache caches translations keyed by direction and source text.
// A nil cache disables caching.
type TranslationCache interface {
	Get(ctx context.Context, direction, text string) (string, bool)
	Set(ctx context.Context, direction, text, translated string)
}

// Normalizer enforces the bilingual boundary: all routing and retrieval
// run on English text, replies are translated back for Urdu speakers.
// Every translation failure degrades to the untranslated string, so the
// pipeline never depends on the translation service being up.
type Normalizer struct {
	detector   *Detector
	translator Translator
	cache      TranslationCache
	log        zerolog.Logger
}

// NewNormalizer creates a normalizer. cache may be nil.
func NewNormalizer(detector *Detector, translator Translator, cache TranslationCache, log zerolog.Logger) *Normalizer {
	return &Normalizer{
		detector:   detector,
		translator: translator,
		cache:      cache,
		log:        log.With().Str("component", "lang").Logger(),
	}
}

// Detect returns the language of the input
func (n *Normalizer) Detect(text string) Language {
	return n.detector.Detect(text)
}

// ToEnglish translates Urdu input to English. English input passes
// through untouched; a failed translation returns the input unchanged.
func (n *Normalizer) ToEnglish(ctx context.Context, text string) string {
	if n.detector.Detect(text) == English {
		return text
	}
	return n.translate(ctx, text, "auto", "en")
}

// ToUrdu translates an English reply to Urdu with the same fail-open
// policy as ToEnglish.
func (n *Normalizer) ToUrdu(ctx context.Context, text string) string {
	if n.detector.Detect(text) == Urdu {
		return text
	}
	return n.translate(ctx, text, "en", "ur")
}

func (n *Normalizer) translate(ctx context.Context, text, source, target string) string {
	direction := source + ":" + target
	if n.cache != nil {
		if cached, ok := n.cache.Get(ctx, direction, text); ok {
			return cached
		}
	}

	translated, err := n.translator.Translate(ctx, text, source, target)
	if err != nil {
		n.log.Warn().Err(err).Str("direction", direction).Msg("translation failed, returning original text")
		return text
	}

	if n.cache != nil {
		n.cache.Set(ctx, direction, text, translated)
	}
	return translated
}
