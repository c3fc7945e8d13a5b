package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd()

	for _, name := range []string{"run", "csv", "schedule", "symbol"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestCSVCmd_ValidatesArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "missing file", args: []string{"csv", "--symbol", "AAPL"}, wantMsg: "accepts 1 arg"},
		{name: "missing symbol", args: []string{"csv", "a.csv"}, wantMsg: "symbol"},
		{name: "bad interval", args: []string{"csv", "a.csv", "--symbol", "AAPL", "--interval", "1week"}, wantMsg: "unsupported interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := newRootCmd()
			root.SetArgs(tt.args)

			err := root.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestScheduleCmd_Defaults(t *testing.T) {
	t.Parallel()

	cmd := newScheduleCmd()

	assert.Equal(t, "0 0 22 * * 1-5", cmd.Flag("cron").DefValue)
	assert.Equal(t, "false", cmd.Flag("run-now").DefValue)
}
