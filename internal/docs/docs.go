// Package docs đăng ký tài liệu OpenAPI của API với swag để gin-swagger phục vụ ở /api/doc.
package docs

import (
	_ "embed"
	"strings"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

type spec struct {
	version string
}

func (s *spec) ReadDoc() string {
	return strings.Replace(swaggerJSON, "{{version}}", s.version, 1)
}

// Register gắn swagger.json vào swag registry (instance mặc định)
func Register(version string) {
	swag.Register(swag.Name, &spec{version: version})
}
