package cmd

import (
	"fmt"
	"slices"
	"strings"
)

// OutputFormat selects how a command renders its result.
type OutputFormat string

type OutputFormats []OutputFormat

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatText OutputFormat = "text"
)

// FlagNameFormat is the flag used by every command that supports OutputFormat.
const FlagNameFormat = "format"

func AllowedOutputFormats() OutputFormats {
	formats := OutputFormats{FormatJSON, FormatText, FormatYAML}
	slices.Sort(formats)
	return formats
}

// String joins the formats with commas.
func (f *OutputFormats) String() string {
	out := make([]string, len(*f))
	for i, v := range *f {
		out[i] = v.String()
	}
	return strings.Join(out, ", ")
}

// String implements pflag.Value.
func (f *OutputFormat) String() string {
	return strings.ToLower(string(*f))
}

// Set implements pflag.Value.
func (f *OutputFormat) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	allowed := AllowedOutputFormats()

	if slices.Contains(allowed, OutputFormat(v)) {
		*f = OutputFormat(v)
		return nil
	}

	return fmt.Errorf("invalid format '%s', must be one of %v", v, allowed.String())
}

// Type implements pflag.Value.
func (f *OutputFormat) Type() string {
	return "format"
}
