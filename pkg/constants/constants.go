// Package constants holds values shared across tallysheet: sheet layout,
// default discovery tokens and file permissions.
package constants

// File permission constants.
const (
	// DirPermissions is used for created directories (rwxr-xr-x).
	DirPermissions = 0755

	// FilePermissions is used for written files (rw-r--r--).
	FilePermissions = 0644
)

// Report sheet names.
const (
	MatchResultsSheet     = "Match Results"
	EstimatedRatingsSheet = "Estimated Ratings"
)

// Report header rows.
var (
	MatchResultsHeader = []string{
		"Winner Name",
		"Winner Membership#",
		"Loser Name",
		"Loser Membership#",
		"Scores",
		"Event",
	}
	EstimatedRatingsHeader = []string{"Name", "Membership#", "Est Rating"}
)

// Default file name tokens used to discover the latest input of each kind.
const (
	DefaultRegistryToken = "membership"
	DefaultRosterToken   = "roster"
	DefaultMatchesToken  = "match"
	DefaultRatingsToken  = "rating"
)

// DefaultOutputFile is the report written when no output path is given.
const DefaultOutputFile = "tournament_report.xlsx"

// SupportedExtensions are the input formats the readers understand.
var SupportedExtensions = []string{".csv", ".xlsx", ".xlsm", ".json"}

// ConfigFileName is the config file searched for in $HOME and the working
// directory, without extension.
const ConfigFileName = ".tallysheet"

// EnvPrefix prefixes environment variables read by the configuration layer.
const EnvPrefix = "TALLYSHEET"
