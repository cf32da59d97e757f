package catalog

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU("TBL-100", "Walnut", "L", "Steel")

	assert.True(t, strings.HasPrefix(sku, "TBL-100-WAL-L-STE-"), sku)
	assert.Regexp(t, regexp.MustCompile(`-[A-Z]{3}$`), sku)
}

func TestGenerateSKU_OptionalParts(t *testing.T) {
	sku := GenerateSKU("TBL-100", "Oak", "", "")

	assert.True(t, strings.HasPrefix(sku, "TBL-100-OAK-"), sku)
	assert.Len(t, sku, len("TBL-100-OAK-")+3)
}

func TestGenerateSKU_ShortColor(t *testing.T) {
	sku := GenerateSKU("B", "ox", "", "")

	assert.True(t, strings.HasPrefix(sku, "B-OX-"), sku)
}

func TestGenerateSKU_SuffixVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateSKU("BASE", "Gray", "", "")] = true
	}
	assert.Greater(t, len(seen), 1, "random suffix should vary")
}
