package types

import (
	"sync"
	"testing"

	"github.com/harness/nexus-migrate/util/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepositoryFormat(t *testing.T) {
	f, err := ParseRepositoryFormat("maven2")
	require.NoError(t, err)
	assert.Equal(t, MAVEN2, f)

	f, err = ParseRepositoryFormat(" NuGet ")
	require.NoError(t, err)
	assert.Equal(t, NUGET, f)

	_, err = ParseRepositoryFormat("npm")
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
}

func TestRunReportCounts(t *testing.T) {
	r := NewRunReport()
	r.Record(FileStat{Path: "b/2.jar", Status: StatusFail})
	r.Record(FileStat{Path: "a/1.jar", Status: StatusFail})
	r.Record(FileStat{Path: "c/3.jar", Status: StatusUpload, Size: 10})
	r.Record(FileStat{Path: "d/4.jar", Status: StatusUpload, Size: 5})
	r.Record(FileStat{Path: "e/5.jar", Status: StatusSkip})
	r.Record(FileStat{Path: "f/6.jar", Status: StatusHacked})
	// recorded once per path
	r.Record(FileStat{Path: "e/5.jar", Status: StatusUpload})

	assert.Equal(t, 1, r.Skipped())
	assert.Equal(t, 2, r.Uploaded())
	assert.Equal(t, 1, r.Hacked())
	assert.Equal(t, 2, r.Failed())
	assert.Equal(t, 6, r.Total())
	assert.Equal(t, int64(15), r.BytesUploaded())
	assert.Equal(t, []string{"a/1.jar", "b/2.jar"}, r.Failures())

	s, ok := r.Status("e/5.jar")
	assert.True(t, ok)
	assert.Equal(t, StatusSkip, s)
}

func TestRunReportMerge(t *testing.T) {
	a := NewRunReport()
	a.Record(FileStat{Path: "x", Status: StatusSkip})
	b := NewRunReport()
	b.Record(FileStat{Path: "y", Status: StatusFail})
	b.Record(FileStat{Path: "x", Status: StatusFail})

	a.Merge(b)
	a.Merge(a)
	a.Merge(nil)

	assert.Equal(t, 2, a.Total())
	assert.Equal(t, 1, a.Skipped())
	assert.Equal(t, []string{"y"}, a.Failures())
}

func TestRunReportConcurrentRecord(t *testing.T) {
	r := NewRunReport()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Record(FileStat{Path: string(rune('A' + i)), Status: StatusUpload})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, r.Uploaded())
}
