package printer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/harness/nexus-migrate/module/migrate/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize(sampleReport(), fmt.Errorf("migration aborted: boom"))

	assert.Equal(t, 1, s.Uploaded)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, int64(2048), s.BytesUploaded)
	assert.Equal(t, []string{"org/a/1.0/a-1.0.jar", "org/z/1.0/z-1.0.jar"}, s.Failures)
	require.Len(t, s.Artifacts, 4)
	assert.Equal(t, "com/acme/pkg/1.0/pkg-1.0.jar", s.Artifacts[0].Path)
	assert.Equal(t, "migration aborted: boom", s.Error)
}

func TestPrintJSONEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, Summarize(types.NewRunReport(), nil)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []any{}, decoded["failures"])
	assert.Equal(t, []any{}, decoded["artifacts"])
	assert.NotContains(t, decoded, "error")
}
