package slug_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koltukutsu/listele/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	t.Run("basic ascii", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "my-waitlist-page", slug.Make("My Waitlist Page"))
	})

	t.Run("turkish transliteration", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "cilgin-proje", slug.Make("Çılgın Proje"))
		assert.Equal(t, "gunes-urunleri", slug.Make("Güneş Ürünleri"))
	})

	t.Run("dotted and dotless i", func(t *testing.T) {
		t.Parallel()
		// Turkish casing: İ lowercases to i, I lowercases to ı (then i via transliteration).
		assert.Equal(t, "istanbul", slug.Make("İstanbul"))
		assert.Equal(t, "ilik", slug.Make("ILIK"))
	})

	t.Run("collapses separators", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a-b", slug.Make("  a --- b!! "))
	})

	t.Run("max length truncates", func(t *testing.T) {
		t.Parallel()
		got := slug.Make(strings.Repeat("abc ", 50), slug.MaxLength(10))
		assert.LessOrEqual(t, len(got), 10)
	})

	t.Run("random suffix appended", func(t *testing.T) {
		t.Parallel()
		got := slug.Make("proje", slug.WithSuffix(6))
		assert.Regexp(t, regexp.MustCompile(`^proje-[a-z0-9]{6}$`), got)
	})

	t.Run("suffix only for empty input", func(t *testing.T) {
		t.Parallel()
		got := slug.Make("!!!", slug.WithSuffix(6))
		assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{6}$`), got)
	})
}
