package pratt

// Version and BuildDate are overridden at link time with -ldflags -X.
var (
	Version   = "0.3.0"
	BuildDate = "unknown"
)
