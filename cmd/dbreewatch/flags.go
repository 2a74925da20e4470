package main

import (
	"flag"
	"strings"
)

// queryList collects repeated -query values
type queryList []string

func (q *queryList) String() string {
	return strings.Join(*q, ",")
}

func (q *queryList) Set(value string) error {
	*q = append(*q, value)
	return nil
}

type AppFlags struct {
	GlobalConfigFile string
	Queries          []string
	DryRun           bool
}

func ParseFlags(fs *flag.FlagSet, args []string) (AppFlags, error) {
	globalConfigFile := fs.String("config", "", "Path to the TOML/YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	var queries queryList
	fs.Var(&queries, "query", "Search query to run instead of the configured ones (repeatable)")
	fs.Var(&queries, "q", "Alias for -query")

	dryRun := fs.Bool("dry-run", false, "Mark new files as seen and print them, but do not post to the webhook")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{
		Queries: queries,
		DryRun:  *dryRun,
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	return flags, nil
}
