// Copyright 2022 OrcaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/orcadb/orca/pkg/common/oerr"
	"github.com/orcadb/orca/pkg/logutil"
)

// CatalogParameters configures the catalog daemon.
type CatalogParameters struct {
	// StorePath is the directory holding the catalog image.
	StorePath string `toml:"store-path"`

	// ImageName is the image file name inside StorePath.
	ImageName string `toml:"image-name"`

	// ProbeAddress is where the bootstrap readiness probe listens.
	ProbeAddress string `toml:"probe-address"`

	Log logutil.LogConfig `toml:"log"`
}

// SetDefaultValues fills every unset parameter.
func (p *CatalogParameters) SetDefaultValues() {
	if p.StorePath == "" {
		p.StorePath = "./store"
	}
	if p.ImageName == "" {
		p.ImageName = "catalog.image"
	}
	if p.ProbeAddress == "" {
		p.ProbeAddress = "127.0.0.1:8030"
	}
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Log.Format == "" {
		p.Log.Format = "console"
	}
}

// ImagePath returns the full path of the catalog image file.
func (p *CatalogParameters) ImagePath() string {
	return filepath.Join(p.StorePath, p.ImageName)
}

// LoadConfigFromFile parses the toml file at path into params.
// Defaults are applied first, so a partial file is fine.
func LoadConfigFromFile(ctx context.Context, path string, params *CatalogParameters) error {
	params.SetDefaultValues()
	if _, err := toml.DecodeFile(path, params); err != nil {
		return oerr.NewBadConfig(ctx, "parse %s: %v", path, err)
	}
	return nil
}
