// Package register holds paths yanked for a later paste.
package register

// Mode says whether a paste moves or copies.
type Mode int

const (
	Copy Mode = iota
	Move
)

func (m Mode) String() string {
	if m == Move {
		return "move"
	}
	return "copy"
}

// Register is an ordered list of yanked paths and the transfer mode.
// The zero value is an empty copy register.
type Register struct {
	paths []string
	mode  Mode
}

// Set replaces the contents.
func (r *Register) Set(mode Mode, paths ...string) {
	r.mode = mode
	r.paths = append([]string(nil), paths...)
}

func (r *Register) Mode() Mode { return r.mode }

func (r *Register) Len() int { return len(r.paths) }

func (r *Register) Empty() bool { return len(r.paths) == 0 }

// Take returns the contents and clears the register.
func (r *Register) Take() ([]string, Mode) {
	paths, mode := r.paths, r.mode
	r.paths, r.mode = nil, Copy
	return paths, mode
}
