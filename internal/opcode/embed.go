package opcode

import _ "embed"

//go:embed instructions.json
var instructionsJSON []byte
