// Package commands holds the activityctl subcommands.
package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// loadConfig reads an optional config file (FTP watts, athlete
// weight, activity-type override) the way Sumatoshi's own config
// loader does: viper.SetConfigFile + ReadInConfig, tolerant of a
// missing file since every setting has a usable zero-value default.
// No subcommand applies the loaded values to ingest or export.
func loadConfig(path string) *viper.Viper {
	v := viper.New()
	v.SetDefault("activity_type", "")
	v.SetDefault("ftp_watts", 0.0)
	v.SetDefault("weight_kg", 0.0)

	if path != "" {
		v.SetConfigFile(path)
		_ = v.ReadInConfig()
	}

	return v
}

// formatFromExtension picks a parser adapter by file suffix.
func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		return "gpx"
	case ".tcx":
		return "tcx"
	case ".fit":
		return "fit"
	default:
		return ""
	}
}
