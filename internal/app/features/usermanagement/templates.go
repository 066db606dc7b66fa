// internal/app/features/usermanagement/templates.go
package usermanagement

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "user_management",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
