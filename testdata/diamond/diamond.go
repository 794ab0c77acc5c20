package diamond

type Saver interface {
	Save() error
}

type Loader interface {
	Load() error
}

type Persister interface {
	Saver
	Loader
}

// Store reaches Saver both directly and through Persister.
type Store interface {
	Persister
	Saver
	Flush() error
}

type DB struct{}

func (d DB) Save() error  { return nil }
func (d DB) Load() error  { return nil }
func (d DB) Flush() error { return nil }
