package config

// SourceFileExt marks the files `sol fmt` picks up from a directory.
const SourceFileExt = ".sol"

// ConfigFileName is the project file looked up from the working directory
// upward.
const ConfigFileName = "sol.yaml"

// DefaultServeAddr is used by `sol serve` when neither the command line nor
// sol.yaml names an address.
const DefaultServeAddr = "127.0.0.1:7411"

// MaxNestingDepth bounds how deeply terms may nest syntactically. The reader
// and the binary decoder reject deeper input. Application spines do not count
// towards it: the passes walk them iteratively.
const MaxNestingDepth = 10000

// HistoryFileName is the REPL history file, kept in the user's home.
const HistoryFileName = ".sol_history"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
