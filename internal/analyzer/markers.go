package analyzer

// Metadata keys read from marker registrations.
const (
	MetadataServiceType = "ServiceType"
	MetadataLayer       = "Layer"
	MetadataLanguage    = "Language"
)

type family int

const (
	familyUnrecognized family = iota
	familyHostService
	familyLanguageService
	familyExcluded
)

// MarkerSet names the well-known marker contracts.
type MarkerSet struct {
	HostService            string   `yaml:"hostService"`
	HostServiceFactory     string   `yaml:"hostServiceFactory"`
	LanguageService        string   `yaml:"languageService"`
	LanguageServiceFactory string   `yaml:"languageServiceFactory"`
	Excluded               []string `yaml:"excluded"`
}

// DefaultMarkers returns the Roslyn workspace marker contracts.
func DefaultMarkers() MarkerSet {
	return MarkerSet{
		HostService:            "Microsoft.CodeAnalysis.Host.IWorkspaceService",
		HostServiceFactory:     "Microsoft.CodeAnalysis.Host.Mef.IWorkspaceServiceFactory",
		LanguageService:        "Microsoft.CodeAnalysis.Host.ILanguageService",
		LanguageServiceFactory: "Microsoft.CodeAnalysis.Host.Mef.ILanguageServiceFactory",
		Excluded: []string{
			"Microsoft.CodeAnalysis.CodeFixes.CodeFixProvider",
			"Microsoft.CodeAnalysis.CodeRefactorings.CodeRefactoringProvider",
		},
	}
}

// RootMarkers returns the two service root markers as a name set.
func (m MarkerSet) RootMarkers() map[string]bool {
	roots := make(map[string]bool, 2)
	if m.HostService != "" {
		roots[m.HostService] = true
	}
	if m.LanguageService != "" {
		roots[m.LanguageService] = true
	}
	return roots
}

func (m MarkerSet) classify(contract string) family {
	if contract == "" {
		return familyUnrecognized
	}
	switch contract {
	case m.LanguageService, m.LanguageServiceFactory:
		return familyLanguageService
	case m.HostService, m.HostServiceFactory:
		return familyHostService
	}
	for _, ex := range m.Excluded {
		if contract == ex {
			return familyExcluded
		}
	}
	return familyUnrecognized
}
