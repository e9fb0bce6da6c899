package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ModuleSpecifier returns the relative import path an index file uses
// for a generated unit. Script extensions are dropped so bundlers
// resolve them; single-file component extensions are kept.
func ModuleSpecifier(fileName string) string {
	name := filepath.ToSlash(fileName)
	switch filepath.Ext(name) {
	case ".ts", ".tsx", ".js", ".jsx":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if strings.HasPrefix(name, ".") {
		return name
	}
	return "./" + name
}

// IndexFileName is the barrel file written next to generated units.
func IndexFileName(typescript bool) string {
	if typescript {
		return "index.ts"
	}
	return "index.js"
}

func ValidateOutputDir(source, output string) error {
	if output == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	src, err := filepath.Abs(source)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return err
	}

	if src == out {
		return fmt.Errorf("output directory cannot be the source directory")
	}

	return nil
}
