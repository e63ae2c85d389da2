package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)

	for _, name := range []string{"recipes.html", "detail.html", "login.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestChartSrc(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)
	_, err = tmpl.New("probe").Parse(`<img src="{{chartSrc .}}">`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "probe", "data:image/png;base64,AAAA"))
	assert.Equal(t, `<img src="data:image/png;base64,AAAA">`, buf.String())

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "probe", "javascript:alert(1)"))
	assert.NotContains(t, buf.String(), "javascript")
}
