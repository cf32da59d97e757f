package catalog

import (
	"math/rand"
	"strings"
)

const skuSuffixLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSKU proposes a SKU for a variant: the base SKU, the first three
// letters of the color, the size and the first three letters of the material
// when present, and a random three-letter suffix for uniqueness. The result
// is advisory; editors may override it, and only non-emptiness is enforced.
func GenerateSKU(base, color, size, material string) string {
	parts := []string{strings.TrimSpace(base)}
	if color = strings.TrimSpace(color); color != "" {
		parts = append(parts, abbreviate(color))
	}
	if size = strings.TrimSpace(size); size != "" {
		parts = append(parts, strings.ToUpper(size))
	}
	if material = strings.TrimSpace(material); material != "" {
		parts = append(parts, abbreviate(material))
	}
	parts = append(parts, randomSuffix(3))
	return strings.Join(parts, "-")
}

func abbreviate(value string) string {
	upper := strings.ToUpper(value)
	if len(upper) > 3 {
		upper = upper[:3]
	}
	return upper
}

func randomSuffix(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(skuSuffixLetters[rand.Intn(len(skuSuffixLetters))])
	}
	return b.String()
}
