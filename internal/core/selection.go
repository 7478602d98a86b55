package core

// Selection controls which registries are probed. The zero value disables
// everything; use DefaultSelection for the all-enabled default.
type Selection struct {
	NPM       bool `json:"npm" mapstructure:"npm"`
	Crates    bool `json:"crates" mapstructure:"crates"`
	PyPI      bool `json:"pypi" mapstructure:"pypi"`
	Brew      bool `json:"brew" mapstructure:"brew"`
	Flatpak   bool `json:"flatpak" mapstructure:"flatpak"`
	Debian    bool `json:"debian" mapstructure:"debian"`
	DevDomain bool `json:"dev_domain" mapstructure:"dev_domain"`
	GitHub    bool `json:"github" mapstructure:"github"`
}

// DefaultSelection enables every registry.
func DefaultSelection() Selection {
	return Selection{
		NPM:       true,
		Crates:    true,
		PyPI:      true,
		Brew:      true,
		Flatpak:   true,
		Debian:    true,
		DevDomain: true,
		GitHub:    true,
	}
}

// Enabled reports whether the given kind should be probed.
func (s Selection) Enabled(kind RegistryKind) bool {
	switch kind {
	case KindNPM:
		return s.NPM
	case KindCrates:
		return s.Crates
	case KindPyPI:
		return s.PyPI
	case KindBrew:
		return s.Brew
	case KindFlatpak:
		return s.Flatpak
	case KindDebian:
		return s.Debian
	case KindDevDomain:
		return s.DevDomain
	case KindGitHub:
		return s.GitHub
	default:
		return false
	}
}

// Toggle flips the flag for the given kind.
func (s *Selection) Toggle(kind RegistryKind) {
	switch kind {
	case KindNPM:
		s.NPM = !s.NPM
	case KindCrates:
		s.Crates = !s.Crates
	case KindPyPI:
		s.PyPI = !s.PyPI
	case KindBrew:
		s.Brew = !s.Brew
	case KindFlatpak:
		s.Flatpak = !s.Flatpak
	case KindDebian:
		s.Debian = !s.Debian
	case KindDevDomain:
		s.DevDomain = !s.DevDomain
	case KindGitHub:
		s.GitHub = !s.GitHub
	}
}

// SelectionFor enables exactly the given kinds.
func SelectionFor(kinds ...RegistryKind) Selection {
	var s Selection
	for _, kind := range kinds {
		if !s.Enabled(kind) {
			s.Toggle(kind)
		}
	}
	return s
}

// EnabledCount returns how many kinds are enabled.
func (s Selection) EnabledCount() int {
	n := 0
	for _, kind := range Kinds {
		if s.Enabled(kind) {
			n++
		}
	}
	return n
}
