// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

// Package lang maps source files to language names and decodes their text.
// The language name is only a hint for the model; it is never validated
// against the file's content.
package lang

import (
	"path/filepath"
	"sort"
	"strings"
)

// extensions maps a lower-cased file extension to a language name.
var extensions = map[string]string{
	// Common languages
	".py":    "Python",
	".js":    "JavaScript",
	".jsx":   "JavaScript (React)",
	".ts":    "TypeScript",
	".tsx":   "TypeScript (React)",
	".java":  "Java",
	".cpp":   "C++",
	".cc":    "C++",
	".cxx":   "C++",
	".c":     "C",
	".h":     "C/C++ Header",
	".hpp":   "C++ Header",
	".go":    "Go",
	".rs":    "Rust",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".kt":    "Kotlin",
	".kts":   "Kotlin Script",
	".cs":    "C#",
	".scala": "Scala",
	".r":     "R",
	".m":     "MATLAB/Objective-C",
	".mm":    "Objective-C++",
	".jl":    "Julia",
	".lua":   "Lua",
	".pl":    "Perl",
	".pm":    "Perl Module",
	".sh":    "Shell/Bash",
	".bash":  "Bash",
	".zsh":   "Zsh",
	".fish":  "Fish",
	".sql":   "SQL",
	".psql":  "PostgreSQL",
	".mysql": "MySQL",

	// Data and config
	".json": "JSON",
	".yaml": "YAML",
	".yml":  "YAML",
	".toml": "TOML",
	".xml":  "XML",

	// Web
	".html": "HTML",
	".htm":  "HTML",
	".css":  "CSS",
	".scss": "SCSS",
	".sass": "Sass",
	".less": "Less",

	// Functional
	".hs":   "Haskell",
	".ml":   "OCaml",
	".mli":  "OCaml Interface",
	".fs":   "F#",
	".fsx":  "F# Script",
	".clj":  "Clojure",
	".cljs": "ClojureScript",
	".ex":   "Elixir",
	".exs":  "Elixir Script",
	".erl":  "Erlang",
	".elm":  "Elm",

	// Systems
	".asm":  "Assembly",
	".s":    "Assembly",
	".v":    "Verilog",
	".vhd":  "VHDL",
	".vhdl": "VHDL",

	// Other
	".dart":       "Dart",
	".groovy":     "Groovy",
	".gradle":     "Gradle",
	".cmake":      "CMake",
	".make":       "Makefile",
	".dockerfile": "Dockerfile",
	".tf":         "Terraform",
	".proto":      "Protocol Buffers",
	".graphql":    "GraphQL",
	".gql":        "GraphQL",
	".vue":        "Vue",
	".svelte":     "Svelte",
	".sol":        "Solidity",
	".move":       "Move",
	".zig":        "Zig",
	".nim":        "Nim",
	".cr":         "Crystal",
	".d":          "D",
	".pas":        "Pascal",
	".pp":         "Pascal",
	".f90":        "Fortran",
	".f95":        "Fortran",
	".f03":        "Fortran",
	".cob":        "COBOL",
	".cbl":        "COBOL",
}

// specialFiles maps well-known lower-cased file names that have no useful
// extension.
var specialFiles = map[string]string{
	"makefile":         "Makefile",
	"dockerfile":       "Dockerfile",
	"gemfile":          "Ruby",
	"rakefile":         "Ruby",
	"vagrantfile":      "Ruby",
	"podfile":          "Ruby",
	"cmakelists.txt":   "CMake",
	"build.gradle":     "Gradle",
	"pom.xml":          "Maven/XML",
	"package.json":     "JSON (npm)",
	"cargo.toml":       "TOML (Rust)",
	"go.mod":           "Go Module",
	"requirements.txt": "Requirements",
	"setup.py":         "Python",
	"pyproject.toml":   "TOML (Python)",
}

// Detect returns the language for path, or "" when neither its extension nor
// its file name is known. The extension is matched case-insensitively.
func Detect(path string) string {
	if name, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return name
	}
	return specialFiles[strings.ToLower(filepath.Base(path))]
}

// Extensions returns every known extension, sorted.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
