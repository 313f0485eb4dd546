// Package classify sorts files into coarse kinds by extension so the host
// can pick a viewer.
package classify

import (
	"path/filepath"
	"strings"
)

type Kind int

const (
	Other Kind = iota
	Document
	Text
	Image
	Video
)

var kindNames = map[Kind]string{
	Other:    "other",
	Document: "document",
	Text:     "text",
	Image:    "image",
	Video:    "video",
}

func (k Kind) String() string {
	return kindNames[k]
}

// ParseKind maps a config name to a Kind
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return Other, false
}

var extKinds = map[string]Kind{}

func register(kind Kind, exts ...string) {
	for _, ext := range exts {
		extKinds[ext] = kind
	}
}

func init() {
	register(Text,
		// code
		".go", ".js", ".ts", ".jsx", ".tsx", ".py", ".rb", ".java", ".rs",
		".cpp", ".c", ".h", ".cs", ".php", ".swift", ".kt", ".scala",
		".r", ".jl", ".lua", ".dart", ".elm", ".clj", ".ex", ".exs",
		".sh", ".bash", ".zsh", ".fish",
		// markup and config
		".txt", ".log", ".md", ".markdown", ".rst", ".json", ".yaml", ".yml",
		".toml", ".ini", ".cfg", ".conf", ".xml", ".html", ".htm", ".css",
		".scss", ".sass", ".csv", ".sql", ".mod", ".sum", ".lock", ".env",
	)
	register(Document, ".pdf", ".doc", ".docx", ".odt", ".xls", ".xlsx", ".ods", ".ppt", ".pptx", ".epub", ".djvu")
	register(Image, ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp", ".bmp", ".tiff")
	register(Video, ".mp4", ".avi", ".mov", ".mkv", ".webm", ".flv", ".wmv", ".m4v")
}

// Classify returns the kind of the file at path. Extension-less names
// such as Makefile or README are treated as text.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Text
	}
	if kind, ok := extKinds[ext]; ok {
		return kind
	}
	return Other
}

// Icon returns an emoji icon for a file based on its extension
func Icon(name string, dir bool) string {
	if dir {
		return "📁"
	}

	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".go":
		return "🐹"
	case ".js", ".ts", ".jsx", ".tsx":
		return "📜"
	case ".py":
		return "🐍"
	case ".rs":
		return "🦀"
	case ".md", ".markdown":
		return "📝"
	case ".zip", ".tar", ".gz", ".rar", ".7z":
		return "📦"
	case ".pdf":
		return "📕"
	case ".mp3", ".wav", ".flac", ".ogg":
		return "🎵"
	}

	switch Classify(name) {
	case Image:
		return "🖼️"
	case Video:
		return "🎬"
	case Document:
		return "📘"
	default:
		return "📄"
	}
}
