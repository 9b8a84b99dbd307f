package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

const previewHTMLTemplate = `<!doctype html>
<html lang="de">
<head>
  <meta charset="utf-8" />
  <title>{{.Template.Name}}</title>
  <style>
    body {
      margin: 0;
      background: #e5e7eb;
      font-family: Arial, sans-serif;
    }
    .page {
      position: relative;
      margin: 24px auto;
      background: #ffffff;
      box-shadow: 0 1px 4px rgba(0,0,0,.25);
      width: 794px;
      min-height: 1123px;
      overflow: hidden;
    }
    .el { position: absolute; box-sizing: border-box; }
    .el table {
      width: 100%;
      border-collapse: collapse;
      font-size: inherit;
    }
    .el th, .el td {
      border-bottom: 1px solid #d1d5db;
      padding: 2px 4px;
      text-align: left;
    }
    .el.barcode { font-family: monospace; letter-spacing: 2px; }
    .bar { display: inline-block; height: 100%; }
  </style>
</head>
<body>
  <div class="page">
    {{range .Nodes}}
    <div class="el{{if .Barcode}} barcode{{end}}" style="{{nodeStyle .}}">
      {{if .Table}}
      <table>
        <thead>
          <tr>{{range .Table.Header}}<th>{{.}}</th>{{end}}</tr>
        </thead>
        <tbody>
          {{range .Table.Rows}}
          <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
          {{end}}
        </tbody>
      </table>
      {{else}}{{.Text}}{{end}}
    </div>
    {{end}}
  </div>
</body>
</html>
`

var cssColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// HTMLPreview renders a resolved visual tree as an absolutely positioned HTML
// page for the screen-preview target. Physical printing and PDF output stay
// with the external print dispatcher.
type HTMLPreview struct {
	tpl *template.Template
}

func NewHTMLPreview() *HTMLPreview {
	funcs := template.FuncMap{
		"nodeStyle": nodeStyle,
	}
	return &HTMLPreview{
		tpl: template.Must(template.New("preview").Funcs(funcs).Parse(previewHTMLTemplate)),
	}
}

// Render writes the preview document for the given tree.
func (p *HTMLPreview) Render(tree *VisualTree) (string, error) {
	var buf bytes.Buffer
	if err := p.tpl.Execute(&buf, tree); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// nodeStyle maps element geometry and style to inline CSS. Only vetted color
// values pass through; everything else falls back to defaults.
func nodeStyle(n Node) template.CSS {
	e := n.Element
	var sb strings.Builder
	fmt.Fprintf(&sb, "left:%gpx;top:%gpx;width:%gpx;height:%gpx;", e.X, e.Y, e.Width, e.Height)
	if e.FontSize > 0 {
		fmt.Fprintf(&sb, "font-size:%gpx;", e.FontSize)
	}
	if e.FontFamily != "" {
		fmt.Fprintf(&sb, "font-family:%s;", sanitizeFontFamily(e.FontFamily))
	}
	if e.Bold {
		sb.WriteString("font-weight:bold;")
	}
	if e.Italic {
		sb.WriteString("font-style:italic;")
	}
	if e.Underline {
		sb.WriteString("text-decoration:underline;")
	}
	if c := sanitizeColor(e.Foreground); c != "" {
		fmt.Fprintf(&sb, "color:%s;", c)
	}
	if !e.Transparent {
		if c := sanitizeColor(e.Background); c != "" {
			fmt.Fprintf(&sb, "background:%s;", c)
		}
	}
	if e.BorderWidth > 0 {
		border := sanitizeColor(e.BorderColor)
		if border == "" {
			border = "#000000"
		}
		fmt.Fprintf(&sb, "border:%gpx solid %s;", e.BorderWidth, border)
	}
	return template.CSS(sb.String())
}

func sanitizeColor(value string) string {
	value = strings.TrimSpace(value)
	if cssColorPattern.MatchString(value) {
		return value
	}
	return ""
}

var fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)

func sanitizeFontFamily(value string) string {
	value = strings.TrimSpace(value)
	if fontFamilyFilter.MatchString(value) {
		return value
	}
	return "Arial"
}
