// =============================================================================
// steam2xml - Main Entry Point
// =============================================================================
//
// steam2xml converts Steam achievement localization files between an XML
// document and the VDF token format.
//
// USAGE:
//   steam2xml <input.xml> <output.vdf>   - XML to VDF
//   steam2xml <input.vdf> <output.xml>   - VDF to XML
//   steam2xml version                    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : parsers, writers, the VDF codec and the conversion pipeline
//   - pkg/       : file handling utilities
//
// =============================================================================

package main

import (
	"os"

	"github.com/ginjaninja78/steam2xml/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
