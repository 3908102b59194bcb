package wellspring

// Version is the release version. Overridden at build time via
// -ldflags "-X github.com/serenelab/wellspring.Version=...".
var Version = "0.1.0"
