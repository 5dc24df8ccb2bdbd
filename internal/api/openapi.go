package api

import _ "embed"

// openAPISpec is the hand-maintained API document served to the swagger UI.
// Keep it in sync with the routes registered in NewRouter.
//
//go:embed openapi.json
var openAPISpec []byte
