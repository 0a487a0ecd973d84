package console

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbtable/internal/report"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestPlainWriter(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")

	var tests = []struct {
		name  string
		color bool
	}{
		{"color requested", true},
		{"color disabled", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := New(&buf, tt.color)
			assert.Equal(t, "Data of Table \"db_user\":", s.Title("Data of Table \"db_user\":"))
			assert.Equal(t, "name", s.Header("name"))
		})
	}
}

func TestANSIProfile(t *testing.T) {
	var buf bytes.Buffer
	s := &Styles{out: termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI))}

	header := s.Header("name")
	assert.Contains(t, header, "\x1b[33m")
	assert.Equal(t, "name", ansi.ReplaceAllString(header, ""))

	title := s.Title("Tables:")
	assert.Contains(t, title, "30")
	assert.Contains(t, title, "43")
	assert.Equal(t, "Tables:", ansi.ReplaceAllString(title, ""))
}

func TestColoredHeadersKeepAlignment(t *testing.T) {
	var buf bytes.Buffer
	s := &Styles{out: termenv.NewOutput(&buf, termenv.WithProfile(termenv.ANSI))}

	colored, err := report.Renderer{HeaderStyle: s.Header}.Render([]string{"id", "name"}, [][]string{{"1", "Derek Jones"}})
	require.NoError(t, err)
	plain, err := report.Renderer{}.Render([]string{"id", "name"}, [][]string{{"1", "Derek Jones"}})
	require.NoError(t, err)

	assert.NotEqual(t, plain[1], colored[1])
	for i := range plain {
		assert.Equal(t, plain[i], ansi.ReplaceAllString(colored[i], ""))
	}
}
