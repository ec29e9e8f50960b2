package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Reformat a BibTeX file into a canonical layout"
	MsgFieldsShort     = "List one field of every entry"
	MsgAbstractsShort  = "Fetch missing abstracts by DOI"
	MsgConfigShort     = "Print the effective configuration as TOML"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"

	// Usage messages
	MsgExpectedPath = "The path to the bibtex file was expected as argument"

	// Version output
	MsgVersionFormat = "bibsort version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Abstracts output
	MsgAbstractsProgress = "%d. %s: %s\n"
	MsgAbstractsMissing  = "%s (%s): %v\n"
	MsgAbstractsSummary  = "%d abstracts added, %d DOIs were not found\n"

	// Error messages
	MsgErrReadDatabase = "failed to read bibliography %s"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file to use instead of ./.bibsort.toml"
	MsgFlagFormat    = "Output format: bib, json, yaml or xml"
	MsgFlagOutput    = "Write the result to this file instead of standard output"
	MsgFlagKeys      = "Only keep entries whose identifier is listed in this file"
	MsgFlagMerge     = "Append the entries of another BibTeX file (repeatable)"
	MsgFlagKeyWidth  = "Column width the field name is padded to"
	MsgFlagWrapWidth = "Line width for wrapped fields"
	MsgFlagDefaults  = "Print the built-in configuration, ignoring files and environment"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/fields-long.txt
	msgFieldsLongRaw string
	MsgFieldsLong    = strings.TrimSpace(msgFieldsLongRaw)

	//go:embed msgs/abstracts-long.txt
	msgAbstractsLongRaw string
	MsgAbstractsLong    = strings.TrimSpace(msgAbstractsLongRaw)
)
