// Package apispec embeds the planning API's OpenAPI contract so the server
// can serve it and the linter can check it.
package apispec

import _ "embed"

//go:embed openapi.yaml
var Document []byte
