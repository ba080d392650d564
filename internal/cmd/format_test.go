package cmd

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gswatchdog/gswatchdog/internal/cmd/output"
)

func TestAllowedOutputFormats(t *testing.T) {
	t.Parallel()

	want := OutputFormats{FormatJSON, FormatText, FormatYAML}
	got := AllowedOutputFormats()

	require.Equal(t, want, got)
	require.Equal(t, "json, text, yaml", got.String())
}

func TestOutputFormat_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{name: "json", input: "json", want: FormatJSON},
		{name: "text", input: "text", want: FormatText},
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "mixed case and spaces", input: " YAML ", want: FormatYAML},
		{name: "unknown", input: "xml", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var f OutputFormat
			err := f.Set(tc.input)
			if tc.wantErr {
				allowed := AllowedOutputFormats()
				require.ErrorContains(t, err, fmt.Sprintf("invalid format '%s'", tc.input))
				require.ErrorContains(t, err, allowed.String())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, f)
			require.Equal(t, string(tc.want), f.String())
			require.Equal(t, "format", f.Type())
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	printer := output.PrinterFunc[string](func(w io.Writer, s string) error {
		_, err := io.WriteString(w, s+"\n")
		return err
	})

	tests := []struct {
		name     string
		format   OutputFormat
		printer  output.Printer[string]
		expected string
		wantErr  string
	}{
		{name: "json", format: FormatJSON, expected: "{\n  \"result\": \"de_dust2\"\n}\n"},
		{name: "yaml", format: FormatYAML, expected: "result: de_dust2\n"},
		{name: "text", format: FormatText, printer: printer, expected: "de_dust2\n"},
		{name: "text without printer", format: FormatText, wantErr: "text output requires a printer"},
		{name: "unknown", format: OutputFormat("csv"), wantErr: "invalid format 'csv'"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			h, err := NewHandler[string](tc.format, buf, tc.printer)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, buf, h.Writer())
			require.NoError(t, h.HandleResult("de_dust2"))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}
