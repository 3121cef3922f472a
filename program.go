package shaderprog

// LinkedProgram is the result of linking one vertex and one fragment unit.
//
// A successful program belongs to the caller, who binds Handle before
// issuing draw calls and calls Delete when the program is no longer drawn.
// A failed program carries no usable handle; the builder has already freed
// its backend object.
type LinkedProgram struct {
	dev     Device
	label   string
	handle  Handle
	ok      bool
	log     string
	deleted bool
}

// Succeeded reports whether the program linked and may be bound.
func (p *LinkedProgram) Succeeded() bool { return p.ok && !p.deleted }

// Handle returns the program object, or InvalidHandle for a failed or
// deleted program.
func (p *LinkedProgram) Handle() Handle {
	if !p.Succeeded() {
		return InvalidHandle
	}
	return p.handle
}

// Log returns the backend link diagnostic. It is only populated on failure.
func (p *LinkedProgram) Log() string { return p.log }

// Label returns the program label (the variant name, or the joined source
// labels).
func (p *LinkedProgram) Label() string { return p.label }

// Delete frees the program object. Safe to call multiple times and on
// failed programs.
func (p *LinkedProgram) Delete() {
	if p == nil || p.deleted {
		return
	}
	p.deleted = true
	if p.ok && p.handle != InvalidHandle {
		p.dev.DeleteProgram(p.handle)
	}
}
