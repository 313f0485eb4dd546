package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	ErrExists   = errors.New("already exists")
	ErrSameFile = errors.New("source and destination are the same")
	ErrIntoSelf = errors.New("cannot copy a directory into itself")
	ErrBadName  = errors.New("invalid name")
)

// Kind is what Inspect found at a path
type Kind int

const (
	KindMissing Kind = iota
	KindFile
	KindEmptyDir
	KindDir
	KindOther
)

// Inspect classifies path for deletion. Symlinks count as files since
// removing one never touches its target.
func Inspect(path string) Kind {
	info, err := os.Lstat(path)
	if err != nil {
		return KindMissing
	}

	switch mode := info.Mode(); {
	case mode.IsRegular(), mode&fs.ModeSymlink != 0:
		return KindFile
	case mode.IsDir():
		f, err := os.Open(path)
		if err != nil {
			return KindDir
		}
		defer f.Close()
		if _, err := f.Readdirnames(1); err != nil {
			return KindEmptyDir
		}
		return KindDir
	default:
		return KindOther
	}
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("%q: %w", name, ErrBadName)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Rename renames a file or directory within its parent. It refuses to
// overwrite an existing entry.
func Rename(oldPath, newName string) error {
	if err := validName(newName); err != nil {
		return err
	}
	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if newPath == oldPath {
		return nil
	}
	if exists(newPath) {
		return fmt.Errorf("%s: %w", newName, ErrExists)
	}
	return os.Rename(oldPath, newPath)
}

// CreateFile creates a new empty file
func CreateFile(dir, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", name, ErrExists)
		}
		return err
	}
	return file.Close()
}

// CreateDir creates a new directory
func CreateDir(dir, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	err := os.Mkdir(filepath.Join(dir, name), 0755)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", name, ErrExists)
	}
	return err
}

// Remove deletes a file or an empty directory
func Remove(path string) error {
	return os.Remove(path)
}

// FormatError turns a filesystem error into a short status line.
func FormatError(err error, path, operation string) error {
	if err == nil {
		return nil
	}

	name := filepath.Base(path)
	switch {
	case errors.Is(err, ErrExists), errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%s already exists", name)
	case errors.Is(err, ErrBadName):
		return fmt.Errorf("invalid name")
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("permission denied: %s", name)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s no longer exists", name)
	default:
		return fmt.Errorf("%s failed: %s", operation, name)
	}
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
