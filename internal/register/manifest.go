package register

import (
	"fmt"

	"github.com/nameclaim/nameclaim/internal/core"
)

// Manifest describes the ecosystem file that marks a repository as a package
// source, plus the command that actually claims the name on the index.
type Manifest struct {
	Filename   string
	PublishCmd string
	Content    func(name string) string
}

var manifests = map[core.RegistryKind]Manifest{
	core.KindNPM: {
		Filename:   "package.json",
		PublishCmd: "npm publish",
		Content:    npmManifest,
	},
	core.KindCrates: {
		Filename:   "Cargo.toml",
		PublishCmd: "cargo publish",
		Content:    cargoManifest,
	},
	core.KindPyPI: {
		Filename:   "pyproject.toml",
		PublishCmd: "twine upload",
		Content:    pyprojectManifest,
	},
}

func manifestFor(kind core.RegistryKind) Manifest {
	return manifests[kind]
}

func npmManifest(name string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "version": "0.0.1",
  "description": "Name reservation",
  "license": "MIT"
}
`, name)
}

func cargoManifest(name string) string {
	return fmt.Sprintf(`[package]
name = %q
version = "0.0.1"
edition = "2021"
description = "Name reservation"
license = "MIT"
`, name)
}

func pyprojectManifest(name string) string {
	return fmt.Sprintf(`[project]
name = %q
version = "0.0.1"
description = "Name reservation"
`, name)
}
