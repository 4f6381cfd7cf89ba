package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/deparse"
)

func TestOperationsCoverEveryEntryPoint(t *testing.T) {
	d, err := deparse.New(deparse.DefaultConfig())
	require.NoError(t, err)

	for _, op := range operations {
		t.Run(op.name, func(t *testing.T) {
			payload, err := op.encode(op.example)
			require.NoError(t, err)

			var out, errOut bytes.Buffer
			require.Equal(t, 0, run(d, op, payload, &out, &errOut), errOut.String())
			require.NotEmpty(t, out.String())
			require.Empty(t, errOut.String())
		})
	}
	require.Zero(t, d.Stats().Heap.Objects)
}

func TestRunPrintsRecord(t *testing.T) {
	d, err := deparse.New(deparse.DefaultConfig())
	require.NoError(t, err)
	op, err := lookup(deparse.OpExpr)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	require.Equal(t, 2, run(d, op, []byte{0x0a}, &out, &errOut))
	require.Empty(t, out.String())
	require.Contains(t, errOut.String(), "[decode] invalid_data")
	require.Contains(t, errOut.String(), "raised at: decoder.go:")
}

func TestReadPayload(t *testing.T) {
	op, err := lookup(deparse.OpStatements)
	require.NoError(t, err)

	dir := t.TempDir()
	sqlPath := filepath.Join(dir, "q.sql")
	require.NoError(t, os.WriteFile(sqlPath, []byte("SELECT 1"), 0o600))

	fromFile, err := readPayload(op, "", sqlPath, "")
	require.NoError(t, err)
	fromFlag, err := readPayload(op, "SELECT 1", "", "")
	require.NoError(t, err)
	require.Equal(t, fromFlag, fromFile)

	pbPath := filepath.Join(dir, "q.pb")
	require.NoError(t, os.WriteFile(pbPath, fromFlag, 0o600))
	raw, err := readPayload(op, "ignored", "", pbPath)
	require.NoError(t, err)
	require.Equal(t, fromFlag, raw)

	_, err = readPayload(op, "SELEC 1", "", "")
	require.ErrorContains(t, err, "parse:")
}

func TestLookupUnknown(t *testing.T) {
	_, err := lookup("nope")
	require.ErrorContains(t, err, "unknown op")
}
