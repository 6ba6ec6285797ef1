package parser_test

import (
	"testing"

	"github.com/Egor213/LogLens/internal/domain"
	"github.com/Egor213/LogLens/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vscodeTemplate = "vscode://file/{{path}}:{{line_number}}"

func TestLinker_Link(t *testing.T) {
	testCases := []struct {
		name string
		cfg  domain.ParseConfig
		msg  string
		want string
	}{
		{
			name: "on line with path remapping",
			cfg: domain.ParseConfig{
				LinkTemplate:    vscodeTemplate,
				LinkPathSearch:  "/srv/www",
				LinkPathReplace: "C:/dev",
			},
			msg:  "PHP Warning:  oops in /srv/www/app/index.php on line 42",
			want: "PHP Warning:  oops in <a href='vscode://file/C:/dev/app/index.php:42'>/srv/www/app/index.php on line 42</a>",
		},
		{
			name: "colon form",
			cfg:  domain.ParseConfig{LinkTemplate: vscodeTemplate},
			msg:  "Uncaught Exception in /app/src/a.php:12",
			want: "Uncaught Exception in <a href='vscode://file//app/src/a.php:12'>/app/src/a.php:12</a>",
		},
		{
			name: "drive letter and parenthesis",
			cfg:  domain.ParseConfig{LinkTemplate: vscodeTemplate},
			msg:  `thrown at C:\app\a.php(12)`,
			want: `thrown at <a href='vscode://file/C:\app\a.php:12'>C:\app\a.php(12)</a>`,
		},
		{
			name: "every line end is linked",
			cfg:  domain.ParseConfig{LinkTemplate: "idea://open?file={{path}}&line={{line_number}}"},
			msg:  "first /a.php:1\nsecond /b.php on line 2",
			want: "first <a href='idea://open?file=/a.php&line=1'>/a.php:1</a>\n" +
				"second <a href='idea://open?file=/b.php&line=2'>/b.php on line 2</a>",
		},
		{
			name: "reference not at line end",
			cfg:  domain.ParseConfig{LinkTemplate: vscodeTemplate},
			msg:  "#0 /app/a.php(3): run()",
			want: "#0 /app/a.php(3): run()",
		},
		{
			name: "carriage return stays outside the link",
			cfg:  domain.ParseConfig{LinkTemplate: vscodeTemplate},
			msg:  "in /a.php:1\r\nnext",
			want: "in <a href='vscode://file//a.php:1'>/a.php:1</a>\r\nnext",
		},
		{
			name: "disabled",
			cfg:  domain.ParseConfig{},
			msg:  "in /srv/www/app/index.php on line 42",
			want: "in /srv/www/app/index.php on line 42",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			linker, err := parser.NewLinker(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, linker.Link(tc.msg))
		})
	}
}

func TestLinker_DisabledMatchesEscapedInput(t *testing.T) {
	raw := "[t1] PHP Warning: \"quoted\" <tag> in /srv/a.php on line 9"

	records, err := parser.Parse(raw, domain.ParseConfig{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, parser.Escape(`PHP Warning: "quoted" <tag> in /srv/a.php on line 9`), records[0].Message)
	assert.NotContains(t, records[0].Message, "<a ")
}

func TestLinker_URI(t *testing.T) {
	linker, err := parser.NewLinker(domain.ParseConfig{
		LinkTemplate:    vscodeTemplate,
		LinkPathSearch:  "/srv/www",
		LinkPathReplace: "C:/dev",
	})
	require.NoError(t, err)
	assert.Equal(t, "vscode://file/C:/dev/app/index.php:42", linker.URI("/srv/www/app/index.php", "42"))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;it&#039;s &amp; more&lt;/a&gt;", parser.Escape(`<a href="x">it's & more</a>`))
}
