package report

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultLocale = "en_US"

var templateFiles = map[string]string{
	"en_US": "templates/report_en_us.html",
	"zh_CN": "templates/report_zh_cn.html",
}

// templateFor loads the locale's template, falling back to the default
// for unknown keys. Parsing happens per cycle so a broken template aborts
// only that cycle.
func templateFor(locale string) (*template.Template, error) {
	name, ok := templateFiles[locale]
	if !ok {
		name = templateFiles[defaultLocale]
	}
	return template.ParseFS(templateFS, name)
}
