package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextHandler_Writer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewTextHandler[string](buf, PrinterFunc[string](func(io.Writer, string) error { return nil }))
	require.Equal(t, buf, h.Writer())
}

func TestTextHandler_HandleResult(t *testing.T) {
	t.Parallel()

	printErr := errors.New("cannot print")

	tests := []struct {
		name     string
		item     string
		expected string
		wantErr  error
	}{
		{
			name:     "prints item",
			item:     "de_inferno",
			expected: "Map: de_inferno\n",
		},
		{
			name:    "printer error",
			item:    "bad",
			wantErr: printErr,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := PrinterFunc[string](func(w io.Writer, item string) error {
				if item == "bad" {
					return printErr
				}
				_, err := fmt.Fprintf(w, "Map: %s\n", item)
				return err
			})

			buf := &bytes.Buffer{}
			h := NewTextHandler[string](buf, p)

			err := h.HandleResult(tc.item)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestTextHandler_HandleError(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	h := NewTextHandler[string](buf, PrinterFunc[string](func(io.Writer, string) error { return nil }))

	want := errors.New("boom")
	require.Equal(t, want, h.HandleError(want))
	require.Empty(t, buf.String())
}
