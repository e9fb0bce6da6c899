package config

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/3-lines-studio/svger/internal/adapters/fs"
)

// Get returns the effective value of a dotted key such as
// "frameworkOptions.memo", with defaults applied.
func Get(fsys fs.FileSystem, path, key string) (string, error) {
	cfg, err := Load(fsys, path)
	if err != nil {
		return "", err
	}

	doc, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	result := gjson.GetBytes(doc, key)
	if !result.Exists() {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	if result.IsObject() || result.IsArray() {
		return result.Raw, nil
	}
	return result.String(), nil
}

// Set stores value under a dotted key in the config file at path,
// creating the file when missing. Values that parse as JSON (numbers,
// booleans, arrays, objects) are stored as such; anything else is
// stored as a string. The result must still validate.
func Set(fsys fs.FileSystem, path, key, value string) error {
	doc := []byte("{}")
	if fsys.FileExists(path) {
		existing, err := readDocument(fsys, path)
		if err != nil {
			return err
		}
		doc = existing
	}

	var err error
	if gjson.Valid(value) {
		doc, err = sjson.SetRawBytes(doc, key, []byte(value))
	} else {
		doc, err = sjson.SetBytes(doc, key, value)
	}
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if err := validateDocument(doc); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	return writeDocument(fsys, path, doc)
}
