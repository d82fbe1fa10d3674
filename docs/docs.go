// Package docs expone la especificación Swagger de la API como contenido
// embebido en el binario, de modo que servirla no dependa del directorio de
// trabajo en tiempo de ejecución.
package docs

import _ "embed"

// SwaggerJSON especificación Swagger 2.0 servida bajo /docs.
//
//go:embed swagger.json
var SwaggerJSON []byte
