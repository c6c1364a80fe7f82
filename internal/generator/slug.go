package generator

import (
	"strings"
	"unicode"

	slug "github.com/goliatone/go-slug"
)

const maxSlugLength = 50

// cyrillicToLatin is the fixed Cyrillic→Latin transliteration table applied
// before ASCII folding. Multi-letter mappings (e.g. "ш" -> "sh") must be
// applied rune-by-rune since Slug operates on the already-transliterated
// ASCII string.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "i", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "E",
	'Ж': "Zh", 'З': "Z", 'И': "I", 'Й': "I", 'К': "K", 'Л': "L", 'М': "M",
	'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "H", 'Ц': "Ts", 'Ч': "Ch", 'Ш': "Sh", 'Щ': "Shch",
	'Ъ': "", 'Ы': "Y", 'Ь': "", 'Э': "E", 'Ю': "Yu", 'Я': "Ya",
}

// Slug is a total function: transliterate Cyrillic to Latin, strip
// combining marks, lowercase, replace any run of non [a-z0-9] with a
// hyphen, trim leading/trailing hyphens, truncate at 50 code points. An
// empty result falls back to "site".
func Slug(brandName string) string {
	transliterated := transliterate(brandName)

	normalized, err := slug.Normalize(transliterated)
	if err != nil || normalized == "" {
		normalized = fallbackNormalize(transliterated)
	}

	if len(normalized) > maxSlugLength {
		normalized = truncateSlug(normalized, maxSlugLength)
	}

	if normalized == "" {
		return "site"
	}
	return normalized
}

func transliterate(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if repl, ok := cyrillicToLatin[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fallbackNormalize mirrors slug.Normalize's contract for inputs the
// library rejects (empty after transliteration, or all-symbol strings).
func fallbackNormalize(input string) string {
	lower := strings.ToLower(input)
	var b strings.Builder
	lastHyphen := false
	for _, r := range lower {
		if unicode.IsLower(r) && r <= unicode.MaxASCII || unicode.IsDigit(r) && r <= unicode.MaxASCII {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && b.Len() > 0 {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func truncateSlug(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.Trim(string(runes[:max]), "-")
}
