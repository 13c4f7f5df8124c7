package tracing

// Span names.
const (
	SpanRegister = "registry.register"
	SpanMake     = "registry.make"
	SpanManifest = "registry.manifest"
)

// Span attribute keys.
const (
	AttrEnvID         = "env.id"
	AttrEnvName       = "env.name"
	AttrEnvVersion    = "env.version"
	AttrEntryPoint    = "env.entry_point"
	AttrKwargKeys     = "env.kwargs.keys"
	AttrInstanceID    = "env.instance.id"
	AttrInstanceType  = "env.instance.type"
	AttrManifestPath  = "manifest.path"
	AttrManifestCount = "manifest.environments"
	AttrErrorKind     = "error.kind"
)

// Event names.
const (
	EventSpecResolved = "spec.resolved"
	EventConstructed  = "env.constructed"
)
