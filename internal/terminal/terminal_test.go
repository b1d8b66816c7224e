package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectNoColorFlag(t *testing.T) {
	assert.False(t, Detect(true).ColorEnabled)
}

func TestDetectNOCOLOREnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, Detect(false).ColorEnabled)
}

func TestDetectNonTTY(t *testing.T) {
	info := Detect(false)
	if info.IsTerminal {
		t.Skip("test stdout appears to be a TTY")
	}
	assert.False(t, info.ColorEnabled)
	assert.False(t, info.LiveOutput)
}

func TestIsDumb(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.True(t, IsDumb())
	t.Setenv("TERM", "xterm-256color")
	assert.False(t, IsDumb())
}

func TestIsCI(t *testing.T) {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "JENKINS_URL", "GITLAB_CI", "CIRCLECI", "TRAVIS"} {
		t.Setenv(v, "")
	}
	assert.False(t, IsCI())
	t.Setenv("GITLAB_CI", "true")
	assert.True(t, IsCI())
}
