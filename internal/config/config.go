// Package config holds the input and output locations of a reconcile run
// and reads them from viper.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/tallysheet/internal/sources"
	"github.com/agentstation/tallysheet/pkg/constants"
	"github.com/agentstation/tallysheet/pkg/records"
	"github.com/agentstation/tallysheet/pkg/types"
)

// Viper keys.
const (
	KeyInputDir       = "input_dir"
	KeyRegistry       = "registry"
	KeyRoster         = "roster"
	KeyMatches        = "matches"
	KeyRatings        = "ratings"
	KeyRegistryToken  = "registry_token"
	KeyRosterToken    = "roster_token"
	KeyMatchesToken   = "matches_token"
	KeyRatingsToken   = "ratings_token"
	KeySheet          = "sheet"
	KeyOutput         = "output"
	KeyProvenance     = "provenance"
	KeyRatingIDFields = "rating_id_fields"
	KeyNoArchive      = "no_archive"
)

// Keys lists every input key, for binding environment variables.
var Keys = []string{
	KeyInputDir, KeyRegistry, KeyRoster, KeyMatches, KeyRatings,
	KeyRegistryToken, KeyRosterToken, KeyMatchesToken, KeyRatingsToken,
	KeySheet, KeyOutput, KeyProvenance, KeyRatingIDFields, KeyNoArchive,
}

// Inputs are the file locations and resolution settings of a run.
type Inputs struct {
	Dir string

	// Explicit paths; empty means discover in Dir
	Registry string
	Roster   string
	Matches  string
	Ratings  string

	// Discovery tokens
	RegistryToken string
	RosterToken   string
	MatchesToken  string
	RatingsToken  string

	Sheet          string
	Output         string
	Provenance     string
	RatingIDFields []string
	NoArchive      bool
}

// Defaults returns inputs with the standard tokens and output file.
func Defaults() Inputs {
	return Inputs{
		Dir:           ".",
		RegistryToken: constants.DefaultRegistryToken,
		RosterToken:   constants.DefaultRosterToken,
		MatchesToken:  constants.DefaultMatchesToken,
		RatingsToken:  constants.DefaultRatingsToken,
		Output:        constants.DefaultOutputFile,
	}
}

// BindEnv binds every input key to its environment variable, so the keys
// are known to v even when only the environment sets them.
func BindEnv(v *viper.Viper) error {
	for _, key := range Keys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	return nil
}

// SetDefaults registers the defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyInputDir, d.Dir)
	v.SetDefault(KeyRegistryToken, d.RegistryToken)
	v.SetDefault(KeyRosterToken, d.RosterToken)
	v.SetDefault(KeyMatchesToken, d.MatchesToken)
	v.SetDefault(KeyRatingsToken, d.RatingsToken)
	v.SetDefault(KeyOutput, d.Output)
}

// FromViper reads inputs from v. Blank values fall back to Defaults.
func FromViper(v *viper.Viper) Inputs {
	d := Defaults()
	return Inputs{
		Dir:            or(v.GetString(KeyInputDir), d.Dir),
		Registry:       v.GetString(KeyRegistry),
		Roster:         v.GetString(KeyRoster),
		Matches:        v.GetString(KeyMatches),
		Ratings:        v.GetString(KeyRatings),
		RegistryToken:  or(v.GetString(KeyRegistryToken), d.RegistryToken),
		RosterToken:    or(v.GetString(KeyRosterToken), d.RosterToken),
		MatchesToken:   or(v.GetString(KeyMatchesToken), d.MatchesToken),
		RatingsToken:   or(v.GetString(KeyRatingsToken), d.RatingsToken),
		Sheet:          v.GetString(KeySheet),
		Output:         or(v.GetString(KeyOutput), d.Output),
		Provenance:     v.GetString(KeyProvenance),
		RatingIDFields: splitList(v.GetStringSlice(KeyRatingIDFields)),
		NoArchive:      v.GetBool(KeyNoArchive),
	}
}

// Sources builds the source list for the inputs. The ratings source is
// optional unless an explicit path was given.
func (in Inputs) Sources() []sources.Source {
	exclude := []string{in.Output, in.Provenance}
	return []sources.Source{
		{ID: types.RegistryID, Path: in.Registry, Dir: in.Dir, Token: in.RegistryToken, Sheet: in.Sheet, Required: true, Columns: records.RegistryColumns, Exclude: exclude},
		{ID: types.RosterID, Path: in.Roster, Dir: in.Dir, Token: in.RosterToken, Sheet: in.Sheet, Required: true, Columns: records.RosterColumns, Exclude: exclude},
		{ID: types.MatchesID, Path: in.Matches, Dir: in.Dir, Token: in.MatchesToken, Sheet: in.Sheet, Required: true, Columns: records.MatchColumns, Exclude: exclude},
		{ID: types.RatingsID, Path: in.Ratings, Dir: in.Dir, Token: in.RatingsToken, Sheet: in.Sheet, Required: in.Ratings != "", Exclude: exclude},
	}
}

// GetString returns a viper string, falling back to the raw environment
// variable when viper has no value for key.
func GetString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

func or(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// splitList accepts both YAML lists and comma-separated strings.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
