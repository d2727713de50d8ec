package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		args    []string
		name    string
		rest    []string
		session bool
		ok      bool
	}{
		{args: []string{"login", "-email", "a@b.co"}, name: "login", rest: []string{"-email", "a@b.co"}, ok: true},
		{args: []string{"leagues", "join", "-league", "3"}, name: "leagues join", rest: []string{"-league", "3"}, session: true, ok: true},
		{args: []string{"seasons", "weeks"}, name: "seasons weeks", rest: []string{}, ok: true},
		{args: []string{"leagues"}, ok: false},
		{args: []string{"draft", "start"}, ok: false},
		{args: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, "_"), func(t *testing.T) {
			cmd, rest, ok := lookup(tt.args)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.name, cmd.name)
			assert.Equal(t, tt.rest, rest)
			assert.Equal(t, tt.session, cmd.session)
		})
	}
}

func TestSeasonsWeeksCommand(t *testing.T) {
	var out bytes.Buffer
	err := runSeasonsWeeks(context.Background(), nil, []string{"-start", "2024-09-05", "-count", "3"}, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"1", "2024-09-05", "2024-09-11"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"3", "2024-09-19", "2024-09-25"}, strings.Fields(lines[3]))
}

func TestSeasonsWeeksCommandRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	err := runSeasonsWeeks(context.Background(), nil, []string{"-start", "2024-09-05", "-count", "0"}, &out)
	assert.Error(t, err)

	err = runSeasonsWeeks(context.Background(), nil, []string{"-start", "09/05/2024"}, &out)
	assert.Error(t, err)
}
