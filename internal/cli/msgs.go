package cli

// Command descriptions
const (
	MsgRootShort = "Build and publish Homebrew bottles"
	MsgRootLong  = `homebrew-automation builds bottles for formulae in a Homebrew tap and
keeps formula files up to date with new source and bottle checksums.`

	MsgPutSdistShort    = "Update a formula's source url and sha256"
	MsgPutSdistLong     = "Reads a formula on stdin and writes it to stdout with the top-level url and sha256 replaced."
	MsgPutBottleShort   = "Add or update a bottle checksum in a formula"
	MsgPutBottleLong    = "Reads a formula on stdin and writes it to stdout with the bottle entry for --os set to --sha256."
	MsgBuildBottleShort = "Build a bottle for a formula in a tap"
	MsgBuildBottleLong  = `Taps the tap, reinstalls the formula with --build-bottle, runs brew bottle
and writes the resulting tarball to the output directory. The tap is always
untapped again once it was tapped.`
	MsgConfigShort     = "Inspect or create the configuration file"
	MsgConfigShowShort = "Print the effective configuration"
	MsgConfigInitShort = "Write a commented configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
)

// Flag descriptions
const (
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "config file (default is $XDG_CONFIG_HOME/homebrew-automation/config.toml)"
	MsgFlagFormat    = "output format: auto, term, text, json or yaml"
	MsgFlagURL       = "source tarball URL"
	MsgFlagSHA256    = "sha256 checksum, 64 hex characters"
	MsgFlagOS        = "bottle tag, e.g. el_capitan (detected with sw_vers when omitted)"
	MsgFlagTap       = "tap name, user/repo (derived from a GitHub --tap-url when omitted)"
	MsgFlagTapURL    = "tap clone URL (derived from --tap when omitted)"
	MsgFlagFormula   = "formula name inside the tap"
	MsgFlagKeepTmp   = "pass --keep-tmp to brew install"
	MsgFlagOutputDir = "directory the bottle is written to"
	MsgFlagWorkDir   = "directory brew bottle runs in"
	MsgFlagForce     = "overwrite an existing config file"
)

// Status messages
const (
	MsgConfigWritten = "Wrote %s"
	MsgVersionFormat = "homebrew-automation version %s\n  commit: %s\n  built:  %s\n"
)
