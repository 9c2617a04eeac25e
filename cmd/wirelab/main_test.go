package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/wirelab/internal/board"
	"github.com/gyaneshwarpardhi/wirelab/internal/circuit"
)

const catalogPath = "../../configs/levels.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", catalogPath, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestLevelsCmd(t *testing.T) {
	out, err := execute(t, "levels")
	require.NoError(t, err)
	assert.Contains(t, out, "Standard Single Pole")
	assert.Contains(t, out, "The Switch Loop")
	assert.Contains(t, out, "3-Way Switching")
}

func TestCheckCmd_Lit(t *testing.T) {
	out, err := execute(t, "check", "--level", "1",
		"--wire", "power-hot:sw1-t1",
		"--wire", "sw1-t2:light-in",
		"--wire", "light-out:power-neutral",
		"--toggle", "sw1")
	require.NoError(t, err)
	assert.Contains(t, out, circuit.MsgComplete)
	assert.Contains(t, out, "sw1 [single_pole] on")
}

func TestCheckCmd_ShortJSON(t *testing.T) {
	out, err := execute(t, "check", "--json", "--wire", "power-hot:power-neutral")
	require.NoError(t, err)

	var v board.View
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "1", v.LevelID)
	assert.True(t, v.Status.IsShortCircuit)
	assert.Equal(t, []string{"power-hot", "power-neutral"}, v.Status.ShortPath)
}

func TestCheckCmd_ThreeWay(t *testing.T) {
	wires := []string{
		"power-hot:sw1-com",
		"sw1-t1:sw2-t1",
		"sw1-t2:sw2-t2",
		"sw2-com:light-in",
		"light-out:power-neutral",
	}
	args := []string{"check", "--level", "3"}
	for _, w := range wires {
		args = append(args, "--wire", w)
	}

	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, circuit.MsgComplete)

	out, err = execute(t, append(args, "--toggle", "sw2")...)
	require.NoError(t, err)
	assert.Contains(t, out, circuit.MsgNoHot)

	out, err = execute(t, append(args, "--toggle", "sw2", "--toggle", "sw1")...)
	require.NoError(t, err)
	assert.Contains(t, out, circuit.MsgComplete)
}

func TestCheckCmd_Errors(t *testing.T) {
	_, err := execute(t, "check", "--level", "9")
	assert.ErrorContains(t, err, "unknown level")

	_, err = execute(t, "check", "--wire", "power-hot")
	assert.ErrorContains(t, err, "expected from:to")

	_, err = execute(t, "check", "--wire", "power-hot:ghost")
	assert.ErrorIs(t, err, board.ErrUnknownTerminal)

	_, err = execute(t, "check", "--toggle", "sw9")
	assert.ErrorIs(t, err, board.ErrUnknownSwitch)

	_, err = execute(t, "--log-level", "loud", "levels")
	assert.ErrorContains(t, err, "invalid log level")
}
