// Package deps resolves the external binaries mediashrink shells out to.
package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNotFound reports that a command could not be resolved.
var ErrNotFound = errors.New("binary not found")

// Requirement defines an external dependency mediashrink relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// EncoderRequirement describes the transcoding tool.
func EncoderRequirement(command string) Requirement {
	return Requirement{
		Name:        "Encoder",
		Command:     command,
		Description: "Re-encodes images and videos",
	}
}

// Resolve returns the absolute path of command. Bare names are looked up on
// PATH; anything containing a separator must be an executable file.
func Resolve(command string) (string, error) {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return "", fmt.Errorf("%w: command not configured", ErrNotFound)
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, cmd)
	}
	info, err := os.Stat(path)
	if err != nil || !isExecutable(info) {
		return "", fmt.Errorf("%w: %q is not an executable file", ErrNotFound, cmd)
	}
	return path, nil
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := Resolve(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = path
		status.Available = true
		results = append(results, status)
	}
	return results
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
