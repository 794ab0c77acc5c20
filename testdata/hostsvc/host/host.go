package host

// WorkspaceService marks workspace-wide services.
type WorkspaceService interface{}

// LanguageService marks per-language services.
type LanguageService interface{}
