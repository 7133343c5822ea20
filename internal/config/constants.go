package config

// Version is the current yolang front-end version.
// Set at build time by the release script via -ldflags or by writing to this file.
var Version = "0.3.1"

const SourceFileExt = ".yo"

// ProjectConfigName is the per-project configuration file read by the
// ext loader for extern declarations.
const ProjectConfigName = "yolang.yaml"

// IsTestMode indicates if the program is running in test mode.
// It defaults to false; no package in this module sets it.
var IsTestMode = false
