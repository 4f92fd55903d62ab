// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// version.go — build stamp for the persistent library and the persistctl
// tool, which prints it from its version subcommand.

package persistent

// Build-time variables, set with -ldflags when persistctl is built for
// release. The defaults mark a local development build.
//
//	BuildDate format : YYYY.MM.DD-HHMM  (24-hour clock)
//	BuildEnv  values : dev | qa | prod
//
// Full version example: "2026.02.28-1750-dev"
var (
	// BuildDate is the date and time the binary was built.
	// Set by: -ldflags "-X 'github.com/AndrewDonelson/persistent.BuildDate=2026.02.28-1750'"
	BuildDate = "0000.00.00-0000"

	// BuildEnv is the target environment for this build.
	// Set by: -ldflags "-X 'github.com/AndrewDonelson/persistent.BuildEnv=dev'"
	BuildEnv = "dev"
)

// Version returns the build stamp as "YYYY.MM.DD-HHMM-env". persistctl
// reports it so a stored file can be traced to the tool that wrote it.
func Version() string {
	return BuildDate + "-" + BuildEnv
}
