package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/LFroesch/trio/internal/logger"
	"github.com/LFroesch/trio/internal/register"
)

// Summary tallies a paste
type Summary struct {
	Done  int
	Total int
	Mode  register.Mode
}

func (s Summary) String() string {
	verb := "copied"
	if s.Mode == register.Move {
		verb = "moved"
	}
	return fmt.Sprintf("%d/%d items %s", s.Done, s.Total, verb)
}

// Paste moves or copies each path into destDir under its base name.
// Failures are logged and counted, never fatal to the rest of the batch.
func Paste(paths []string, mode register.Mode, destDir string) Summary {
	sum := Summary{Total: len(paths), Mode: mode}
	for _, src := range paths {
		dst := filepath.Join(destDir, filepath.Base(src))

		var err error
		if mode == register.Move {
			err = move(src, dst)
		} else {
			err = copyTo(src, dst)
		}
		if err != nil {
			logger.Warn("Paste %s %s -> %s failed: %v", mode, src, dst, err)
			continue
		}
		sum.Done++
	}
	return sum
}

func checkTransfer(src, dst string) (os.FileInfo, error) {
	info, err := os.Lstat(src)
	if err != nil {
		return nil, err
	}
	if info.IsDir() && strings.HasPrefix(dst, src+string(filepath.Separator)) {
		return nil, ErrIntoSelf
	}
	if exists(dst) {
		return nil, fmt.Errorf("%s: %w", dst, ErrExists)
	}
	return info, nil
}

func move(src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		if exists(src) {
			return nil
		}
		return fmt.Errorf("%s: %w", src, os.ErrNotExist)
	}
	if _, err := checkTransfer(src, dst); err != nil {
		return err
	}

	// cross-device moves fail here, copy then delete instead
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFileOrDir(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

func copyTo(src, dst string) error {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return ErrSameFile
	}
	if _, err := checkTransfer(src, dst); err != nil {
		return err
	}
	return CopyFileOrDir(src, dst)
}

// CopyFileOrDir copies a file or directory from src to dst
func CopyFileOrDir(src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case srcInfo.IsDir():
		return copyDir(src, dst)
	case srcInfo.Mode()&os.ModeSymlink != 0:
		return copySymlink(src, dst)
	default:
		return copyFile(src, dst)
	}
}

// copyFile copies a single file, keeping its permission bits
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	return os.Symlink(target, dst)
}

// copyDir creates dst and then copies the children of src into it. The
// first failing child stops the copy; siblings already copied stay.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.Mkdir(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if err := CopyFileOrDir(srcPath, dstPath); err != nil {
			return fmt.Errorf("copy %s: %w", entry.Name(), err)
		}
	}

	return nil
}
