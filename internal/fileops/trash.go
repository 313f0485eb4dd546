package fileops

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/LFroesch/trio/internal/logger"
)

// MoveToTrash moves a file or directory to the system trash/recycle bin
func MoveToTrash(path string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file "%s"`, path)
		return exec.Command("osascript", "-e", script).Run()

	case "windows":
		method := "DeleteFile"
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			method = "DeleteDirectory"
		}
		cmd := exec.Command("powershell", "-Command", fmt.Sprintf(`Add-Type -AssemblyName Microsoft.VisualBasic; [Microsoft.VisualBasic.FileIO.FileSystem]::%s('%s', 'OnlyErrorDialogs', 'SendToRecycleBin')`, method, path))
		return cmd.Run()

	default:
		if commandExists("gio") {
			return exec.Command("gio", "trash", path).Run()
		}
		if commandExists("trash-put") {
			return exec.Command("trash-put", path).Run()
		}
		return fmt.Errorf("trash command not available (install trash-cli or gvfs)")
	}
}

// Purge removes path and everything below it. With trash it tries the
// desktop trash first and only deletes for good when that fails.
func Purge(path string, trash bool) error {
	if trash {
		err := MoveToTrash(path)
		if err == nil {
			return nil
		}
		logger.Warn("Trash failed for %s, deleting instead: %v", path, err)
	}
	return os.RemoveAll(path)
}

// DeleteSelection deletes each path by its kind: files and empty
// directories directly, full directories through purge. Other kinds and
// vanished paths are skipped. It returns how many were deleted.
func DeleteSelection(paths []string, purge func(string) error) int {
	deleted := 0
	for _, path := range paths {
		var err error
		switch Inspect(path) {
		case KindFile, KindEmptyDir:
			err = Remove(path)
		case KindDir:
			err = purge(path)
		default:
			continue
		}
		if err != nil {
			logger.Warn("Delete failed for %s: %v", path, err)
			continue
		}
		deleted++
	}
	return deleted
}
