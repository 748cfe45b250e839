package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleSink_WritesOSCSequence(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTitleSink(&buf)

	sink.SetTitle("24:59 - Work")

	assert.Equal(t, "\x1b]2;24:59 - Work\a", buf.String())
}

func TestTitleSink_SequentialTitles(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTitleSink(&buf)

	sink.SetTitle("00:01 - Break")
	sink.SetTitle("Pomodoro Timer")

	assert.Equal(t, "\x1b]2;00:01 - Break\a\x1b]2;Pomodoro Timer\a", buf.String())
}
