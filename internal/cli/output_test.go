package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Helpers
// ============================================================================

type mockDataWithID struct {
	ID   int
	Name string
}

func (m mockDataWithID) GetID() int {
	return m.ID
}

type mockDataWithoutID struct {
	Name  string
	Value int
}

// capture redirects *target while fn runs and returns what was written
func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	old := *target
	r, w, err := os.Pipe()
	require.NoError(t, err)
	*target = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	defer func() { *target = old }()
	fn()
	_ = w.Close()
	return <-outC
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &out), "output: %s", s)
	return out
}

// ============================================================================
// Success
// ============================================================================

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	out := capture(t, &os.Stdout, func() {
		require.NoError(t, f.Success(mockDataWithoutID{Name: "a", Value: 2}))
	})

	result := decode(t, out)
	assert.Equal(t, true, result["success"])
	data, ok := result["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a", data["Name"])
	assert.Equal(t, float64(2), data["Value"])
}

func TestOutputFormatter_Success_QuietPrintsID(t *testing.T) {
	f := &OutputFormatter{Quiet: true, JSON: true}

	out := capture(t, &os.Stdout, func() {
		require.NoError(t, f.Success(mockDataWithID{ID: 42, Name: "x"}))
	})

	assert.Equal(t, "42\n", out, "quiet wins over JSON when data has an ID")
}

func TestOutputFormatter_Success_QuietWithoutIDFallsThrough(t *testing.T) {
	f := &OutputFormatter{Quiet: true}

	out := capture(t, &os.Stdout, func() {
		require.NoError(t, f.Success(mockDataWithoutID{Name: "n", Value: 1}))
	})

	assert.Contains(t, out, "Name:n")
}

func TestOutputFormatter_JSONSuccessAddsFlag(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	out := capture(t, &os.Stdout, func() {
		require.NoError(t, f.JSONSuccess(map[string]any{"entry_id": 3}))
	})

	assert.Equal(t, map[string]any{"entry_id": float64(3), "success": true}, decode(t, out))
}

// ============================================================================
// Errors
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	out := capture(t, &os.Stdout, func() {
		require.NoError(t, f.ErrorWithSuggestion("NOT_FOUND", "entry 9 not found", "run tock list"))
	})

	result := decode(t, out)
	assert.Equal(t, false, result["success"])
	errData, ok := result["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", errData["code"])
	assert.Equal(t, "entry 9 not found", errData["message"])
	assert.Equal(t, "run tock list", errData["suggestion"])
}

func TestOutputFormatter_Error_JSONOmitsEmptySuggestion(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	out := capture(t, &os.Stdout, func() {
		require.NoError(t, f.Error("ERROR", "boom"))
	})

	errData := decode(t, out)["error"].(map[string]any)
	assert.NotContains(t, errData, "suggestion")
}

func TestOutputFormatter_Error_HumanGoesToStderr(t *testing.T) {
	f := &OutputFormatter{}

	var stdout string
	stderr := capture(t, &os.Stderr, func() {
		stdout = capture(t, &os.Stdout, func() {
			require.NoError(t, f.ErrorWithSuggestion("X", "boom", "try again"))
		})
	})

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "❌ Error: boom")
	assert.Contains(t, stderr, "💡 Suggestion: try again")
}

func TestOutputFormatter_WarningGoesToStderr(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	stderr := capture(t, &os.Stderr, func() {
		f.Warning("not saved")
	})

	assert.Equal(t, "⚠ Warning: not saved\n", stderr)
}
