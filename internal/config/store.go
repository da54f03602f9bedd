package config

import (
	"fmt"
	"os"
	"path/filepath"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/nleclerc/dockhand/internal/model"
)

// inventoryFile is the on-disk shape of the persisted service inventory.
type inventoryFile struct {
	Services map[string]model.ServiceDescriptor `yaml:"services"`
}

// LoadInventory reads the persisted service inventory. A missing file
// is an empty inventory, not an error, so first runs need no setup.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.Inventory{}, nil
	}
	if err != nil {
		return nil, err
	}

	var file inventoryFile
	if err := yamlv3.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing inventory %s: %w", path, err)
	}

	inv := make(model.Inventory, len(file.Services))
	for name, svc := range file.Services {
		svc.Name = name
		inv[name] = svc
	}
	return inv, nil
}

// SaveInventory writes the inventory atomically: the new content lands
// in a temp file first and replaces the old one with a rename, so a
// concurrent reader sees either the old inventory or the new one.
func SaveInventory(path string, inv model.Inventory) error {
	file := inventoryFile{Services: make(map[string]model.ServiceDescriptor, len(inv))}
	for name, svc := range inv {
		file.Services[name] = svc
	}

	data, err := yamlv3.Marshal(&file)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, ".dockhand-*.yml")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
