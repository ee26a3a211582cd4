package opener

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlyFound(commands ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, c := range commands {
			if c == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestOpener_Open(t *testing.T) {
	t.Run("first available viewer", func(t *testing.T) {
		var gotName string
		var gotArgs []string
		o := NewOpener(
			WithViewers(platformViewers("linux")...),
			WithLookPath(onlyFound("soffice")),
			WithStarter(func(name string, args ...string) error {
				gotName, gotArgs = name, args
				return nil
			}),
		)

		require.NoError(t, o.Open("/tmp/talk.pptx"))
		assert.Equal(t, "soffice", gotName)
		assert.Equal(t, []string{"--impress", "/tmp/talk.pptx"}, gotArgs)
	})

	t.Run("no viewer installed", func(t *testing.T) {
		o := NewOpener(WithViewers(platformViewers("linux")...), WithLookPath(onlyFound()))
		err := o.Open("talk.pptx")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "viewer selection")
	})

	t.Run("no viewers for platform", func(t *testing.T) {
		o := NewOpener(WithViewers())
		_, err := o.Detect()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no viewers known")
	})

	t.Run("start failure", func(t *testing.T) {
		o := NewOpener(
			WithViewers(platformViewers("darwin")...),
			WithLookPath(onlyFound("open")),
			WithStarter(func(string, ...string) error { return errors.New("denied") }),
		)
		err := o.Open("talk.pptx")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "launching Default")
	})
}

func TestPlatformViewers(t *testing.T) {
	tests := []struct {
		goos    string
		command string
		args    []string
	}{
		{goos: "darwin", command: "open", args: []string{"a.pptx"}},
		{goos: "linux", command: "xdg-open", args: []string{"a.pptx"}},
		{goos: "windows", command: "cmd", args: []string{"/c", "start", "", "a.pptx"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			viewers := platformViewers(tt.goos)
			require.NotEmpty(t, viewers)
			assert.Equal(t, tt.command, viewers[0].Command)
			assert.Equal(t, tt.args, viewers[0].Args("a.pptx"))
		})
	}

	assert.Empty(t, platformViewers("plan9"))
}

func TestOpener_Detect(t *testing.T) {
	o := NewOpener(WithViewers(platformViewers("linux")...), WithLookPath(onlyFound("xdg-open")))
	name, err := o.Detect()
	require.NoError(t, err)
	assert.Equal(t, "xdg-open", name)
}
