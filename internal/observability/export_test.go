package observability

// Internals exported for tests.
var (
	NewResource   = newResource
	ChooseSampler = chooseSampler
	IdentityAttrs = identityAttrs
)
