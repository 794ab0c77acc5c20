package services

import "example.com/hostsvc/host"

type Formatter interface {
	host.LanguageService
	Format(src string) string
}

type Cache interface {
	host.WorkspaceService
	Get(key string) (string, bool)
}

type PersistentCache interface {
	Cache
	Flush() error
}

type Telemetry interface {
	host.WorkspaceService
	Record(event string)
}

type Plain interface {
	Close() error
}

type CacheAlias = Cache

type DefaultCache struct{}

func (DefaultCache) Get(string) (string, bool) { return "", false }
