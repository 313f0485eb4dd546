package git

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// Info is the git state shown for the browsed directory
type Info struct {
	Branch   string
	Modified map[string]bool // absolute paths, including their parent dirs
}

// IsModified reports whether path or something below it changed
func (i Info) IsModified(path string) bool {
	return i.Modified[path]
}

// Status collects branch and modified paths for dir. Outside a repository
// it returns an empty Info.
func Status(dir string) Info {
	info := Info{Modified: make(map[string]bool)}

	root, err := output(dir, "rev-parse", "--show-toplevel")
	root = strings.TrimSpace(root)
	if err != nil || root == "" {
		return info
	}

	info.Branch = GetBranch(dir)

	out, err := output(dir, "status", "--porcelain")
	if err != nil {
		return info
	}

	for _, line := range strings.Split(out, "\n") {
		if len(line) <= 3 {
			continue
		}
		// Status is in first two characters, filename starts at position 3
		filename := strings.TrimSpace(line[3:])
		if i := strings.Index(filename, " -> "); i >= 0 {
			filename = filename[i+4:]
		}
		filename = strings.Trim(filename, `"`)
		if filename == "" {
			continue
		}

		path := filepath.Join(root, filename)
		for path != root && path != filepath.Dir(path) {
			info.Modified[path] = true
			path = filepath.Dir(path)
		}
	}

	return info
}

// GetBranch returns the current git branch name
func GetBranch(dir string) string {
	branch, err := output(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(branch)
}

func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
