package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextFlatFields(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"recommendation", `{"recommendation":"Sell now"}`, "Sell now"},
		{"insight", `{"insight":"Hold for a week"}`, "Hold for a week"},
		{"message", `{"message":"Wait for rates to improve"}`, "Wait for rates to improve"},
		{"nested data", `{"data":{"recommendation":"Hold"}}`, "Hold"},
		{"top-level string", `"Just sell"`, "Just sell"},
		{"trims whitespace", `{"text":"  padded  "}`, "padded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractText([]byte(tc.body)))
		})
	}
}

func TestExtractTextPriorityOrder(t *testing.T) {
	body := `{"message":"from message","recommendation":"from recommendation"}`
	assert.Equal(t, "from recommendation", ExtractText([]byte(body)))
}

func TestExtractTextGeminiShape(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"Prices are falling, sell today."}]}}]}`
	assert.Equal(t, "Prices are falling, sell today.", ExtractText([]byte(body)))
}

func TestExtractTextSkipsEmptyFields(t *testing.T) {
	body := `{"recommendation":"","insight":"   ","message":"usable"}`
	assert.Equal(t, "usable", ExtractText([]byte(body)))
}

func TestExtractTextNothingUsable(t *testing.T) {
	cases := []string{
		`{}`,
		`{"status":"ok","code":200}`,
		`{"candidates":[]}`,
		`[]`,
		``,
	}
	for _, body := range cases {
		assert.Empty(t, ExtractText([]byte(body)), "body=%q", body)
	}
}

func TestExtractTextPlainProse(t *testing.T) {
	assert.Equal(t, "Sell your stock now.", ExtractText([]byte("Sell your stock now.")))
}
