// Package opener opens written presentations in the desktop viewer.
package opener

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// Viewer is one way of opening a file on the current platform
type Viewer struct {
	Name    string
	Command string
	Args    func(path string) []string
}

// Opener implements the FileOpener interface
type Opener struct {
	viewers  []Viewer
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// Option configures an Opener
type Option func(*Opener)

// WithViewers replaces the platform viewer list
func WithViewers(viewers ...Viewer) Option {
	return func(o *Opener) {
		o.viewers = viewers
	}
}

// WithStarter replaces the process starter
func WithStarter(start func(name string, args ...string) error) Option {
	return func(o *Opener) {
		if start != nil {
			o.start = start
		}
	}
}

// WithLookPath replaces the executable lookup
func WithLookPath(lookPath func(file string) (string, error)) Option {
	return func(o *Opener) {
		if lookPath != nil {
			o.lookPath = lookPath
		}
	}
}

// NewOpener creates an opener for the current platform
func NewOpener(opts ...Option) *Opener {
	o := &Opener{
		viewers:  platformViewers(runtime.GOOS),
		lookPath: exec.LookPath,
		start:    startDetached,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open starts the first available viewer on path without waiting for it
func (o *Opener) Open(path string) error {
	viewer, err := o.selectViewer()
	if err != nil {
		return fmt.Errorf("viewer selection: %w", err)
	}
	if err := o.start(viewer.Command, viewer.Args(path)...); err != nil {
		return fmt.Errorf("launching %s: %w", viewer.Name, err)
	}
	return nil
}

// Detect returns the name of the viewer Open would use
func (o *Opener) Detect() (string, error) {
	viewer, err := o.selectViewer()
	if err != nil {
		return "", err
	}
	return viewer.Name, nil
}

// selectViewer returns the first viewer whose executable is in PATH
func (o *Opener) selectViewer() (*Viewer, error) {
	if len(o.viewers) == 0 {
		return nil, errors.New("no viewers known for this platform")
	}
	for i := range o.viewers {
		if _, err := o.lookPath(o.viewers[i].Command); err == nil {
			return &o.viewers[i], nil
		}
	}
	return nil, errors.New("no supported viewer found on this system")
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 - command comes from the fixed viewer table
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func single(path string) []string {
	return []string{path}
}

// platformViewers lists the viewers tried on goos, in order
func platformViewers(goos string) []Viewer {
	switch goos {
	case "darwin":
		return []Viewer{
			{Name: "Default", Command: "open", Args: single},
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Viewer{
			{Name: "xdg-open", Command: "xdg-open", Args: single},
			{Name: "LibreOffice Impress", Command: "libreoffice", Args: func(path string) []string {
				return []string{"--impress", path}
			}},
			{Name: "LibreOffice Impress", Command: "soffice", Args: func(path string) []string {
				return []string{"--impress", path}
			}},
		}
	case "windows":
		return []Viewer{
			// the empty argument is the window title expected by start
			{Name: "Default", Command: "cmd", Args: func(path string) []string {
				return []string{"/c", "start", "", path}
			}},
		}
	default:
		return nil
	}
}

// Ensure Opener implements ports.FileOpener
var _ ports.FileOpener = (*Opener)(nil)
