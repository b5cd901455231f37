package internal

// Owner collects the cleanups of everything attached to a root,
// so that tearing the root down releases them all at once.
type Owner struct {
	// cleanup functions to be called when the owner is disposed
	cleanups *Registry[func()]

	disposed bool
}

func NewOwner() *Owner {
	return &Owner{
		cleanups: NewRegistry[func()](),
	}
}

// OnCleanup registers fn to run on Dispose and returns a function forgetting it.
// Once disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) func() {
	if o.disposed {
		fn()
		return func() {}
	}
	return o.cleanups.Add(fn)
}

func (o *Owner) Disposed() bool {
	return o.disposed
}

// Dispose runs the cleanups in registration order. Later calls do nothing.
func (o *Owner) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true

	o.cleanups.Each(func(fn func()) { fn() })
	o.cleanups = NewRegistry[func()]()
}
