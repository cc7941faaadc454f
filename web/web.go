// Package web holds the portal's embedded HTML templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/noah-isme/eschool-portal/internal/models"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"orNA":  models.OrNA,
	"fixed": func(v interface{}, places int) string { return fmt.Sprintf("%.*f", places, toFloat(v)) },
	"add":   func(a, b int) int { return a + b },
	"sub":   func(a, b int) int { return a - b },
	"join":  strings.Join,
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"key":   func(header string) string { return strings.ReplaceAll(strings.ToLower(header), " ", "_") },
	"active": func(current, path string) bool {
		return current == path || (path != "/" && strings.HasPrefix(current, path+"/"))
	},
	"pages": func(p models.Pagination) []int {
		out := make([]int, 0, p.TotalPages)
		for i := 1; i <= p.TotalPages; i++ {
			out = append(out, i)
		}
		return out
	},
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case models.Decimal:
		return n.Float()
	}
	return 0
}

// Templates parses every embedded template. Each page is addressed by its file name.
func Templates() (*template.Template, error) {
	return template.New("portal").Funcs(Funcs).ParseFS(files, "templates/*.html")
}
