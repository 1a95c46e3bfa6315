package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/biostudy/internal/seed"
	"github.com/roach88/biostudy/internal/store"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeStorage, "failed to open database", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E002", resp.Error.Code)
	assert.Equal(t, "failed to open database", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Schema ready (version 1)")
	require.NoError(t, err)
	assert.Equal(t, "Schema ready (version 1)\n", buf.String())
}

func TestOutputFormatter_TextErrorVerboseDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error(ErrCodeConstraint, "age out of range", "age=17")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E003]: age out of range")
	assert.Contains(t, buf.String(), "Details: age=17")
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("opened %s", "test.db")
	assert.Empty(t, out.String())
	assert.Equal(t, "opened test.db\n", errOut.String())

	formatter.Verbose = false
	formatter.VerboseLog("hidden")
	assert.Equal(t, "opened test.db\n", errOut.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "open", errors.New("boom"))))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "failed")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestErrorCode(t *testing.T) {
	storageErr := WrapExitError(ExitCommandError, "failed to open database",
		fmt.Errorf("%w: no such directory", store.ErrStorageUnavailable))
	assert.Equal(t, ErrCodeStorage, errorCode(storageErr))

	constraintErr := &store.ConstraintError{Kind: store.ConstraintCheck, Op: "insert patient", Err: errors.New("CHECK constraint failed")}
	assert.Equal(t, ErrCodeConstraint, errorCode(fmt.Errorf("reset: %w", constraintErr)))

	datasetErr := WrapExitError(ExitFailure, "failed to load dataset", &seed.ValidationError{Message: "bad"})
	assert.Equal(t, ErrCodeDataset, errorCode(datasetErr))

	assert.Equal(t, ErrCodeGeneric, errorCode(errors.New("other")))
}
