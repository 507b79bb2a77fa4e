package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLiteralKeywords(t *testing.T) {
	got := Default().Extract("Proficient in Adobe Photoshop and data entry; some welding on the side.")

	assert.Contains(t, got, "adobe photoshop")
	assert.Contains(t, got, "photoshop")
	assert.Contains(t, got, "data entry")
	assert.Contains(t, got, "welding")
}

func TestExtractTitleInference(t *testing.T) {
	cases := []struct {
		title string
		want  []string
	}{
		{"Graphic Designer needed", []string{"graphic design", "adobe photoshop", "illustrator", "visual design"}},
		{"Web Developer", []string{"web design", "html", "css", "javascript"}},
		{"Company Driver", []string{"driving", "professional driving", "defensive driving"}},
		{"Administrative Assistant", []string{"clerical", "microsoft office", "data entry"}},
		{"Chef de Partie", []string{"cooking", "food preparation", "food safety"}},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			got := Default().Extract(tc.title)
			for _, want := range tc.want {
				assert.Contains(t, got, want, "title %q", tc.title)
			}
		})
	}
}

func TestExtractEmptyAndUnknownText(t *testing.T) {
	assert.Nil(t, Default().Extract(""))
	assert.Nil(t, Default().Extract("   "))
	assert.Nil(t, Default().Extract("zzzz qqqq completely unknown phrase"))
}

func TestExtractDeduplicates(t *testing.T) {
	got := Default().Extract("photoshop photoshop Photoshop")

	count := 0
	for _, s := range got {
		if s == "photoshop" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSimilarExactAndSubstring(t *testing.T) {
	tax := Default()

	assert.True(t, tax.Similar(" Welding ", "welding"))
	assert.True(t, tax.Similar("adobe photoshop", "photoshop"))
	// Short tokens never match by substring.
	assert.False(t, tax.Similar("js", "j"))
}

func TestSimilarGroups(t *testing.T) {
	tax := Default()

	// Tool literacy implies the parent skill.
	assert.True(t, tax.Similar("photoshop", "graphic design"))
	assert.True(t, tax.Similar("canva", "graphic design"))
	assert.True(t, tax.Similar("react", "javascript"))
	assert.True(t, tax.Similar("baking", "pastry"))

	// Groups are narrow: unrelated professions never cross-match.
	assert.False(t, tax.Similar("sewing", "graphic design"))
	assert.False(t, tax.Similar("python", "java"))
	assert.False(t, tax.Similar("welding", "cooking"))
	assert.False(t, tax.Similar("driving", "nursing"))
}

func TestSimilarEmptyTokens(t *testing.T) {
	tax := Default()
	assert.False(t, tax.Similar("", "welding"))
	assert.False(t, tax.Similar("welding", ""))
}

func TestAnySimilar(t *testing.T) {
	tax := Default()
	require.True(t, tax.AnySimilar("graphic design", []string{"sewing", "photoshop"}))
	require.False(t, tax.AnySimilar("graphic design", []string{"sewing", "welding"}))
}

func TestLoadRejectsBadPattern(t *testing.T) {
	_, err := load([]byte(`{"inferences": [{"pattern": "(", "skills": ["x"]}]}`))
	require.Error(t, err)
}
