package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"quick and short", []string{"20", "pasta, tomato sauce, cheese"}, "Easy (20 min, 3 ingredients)\n"},
		{"thirty minutes is not easy", []string{"30", "a, b, c, d"}, "Medium (30 min, 4 ingredients)\n"},
		{"blank terms are not counted", []string{"10", "a, ,b,"}, "Easy (10 min, 2 ingredients)\n"},
		{"long stew", []string{"180", "beef, potatoes"}, "Hard (180 min, 2 ingredients)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"classify"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestClassifyCommand_InvalidMinutes(t *testing.T) {
	_, err := execute(t, "classify", "soon", "tea")
	assert.ErrorContains(t, err, "whole number of minutes")
}

func TestMigrateVersion_RequiresPostgres(t *testing.T) {
	t.Setenv("CATALOG_DATABASE_DRIVER", "sqlite")

	_, err := execute(t, "migrate", "version")
	assert.ErrorContains(t, err, `require the "postgres" driver`)
}
