package shaderprog

// CompiledUnit is the result of compiling one Source.
//
// A unit owns one backend shader object from Compile until Link consumes it
// or Release frees it. Units are never shared across programs: once linked,
// the handle is gone.
type CompiledUnit struct {
	dev      Device
	stage    Stage
	label    string
	handle   Handle
	ok       bool
	log      string
	released bool
}

// Stage returns the stage the unit was compiled for.
func (u *CompiledUnit) Stage() Stage { return u.stage }

// Label returns the label of the source the unit was compiled from.
func (u *CompiledUnit) Label() string { return u.label }

// Succeeded reports whether the backend compiled the source.
func (u *CompiledUnit) Succeeded() bool { return u.ok }

// Log returns the backend diagnostic text. It is only populated on failure.
func (u *CompiledUnit) Log() string { return u.log }

// Handle returns the backend shader object, or InvalidHandle once the unit
// has been released. A handle of a failed unit is still allocated but must
// not be linked.
func (u *CompiledUnit) Handle() Handle {
	if u.released {
		return InvalidHandle
	}
	return u.handle
}

// Released reports whether the shader object has been freed.
func (u *CompiledUnit) Released() bool { return u.released }

// Release frees the shader object. Link releases both of its units, so
// Release is only needed for units that are never linked. Safe to call
// multiple times.
func (u *CompiledUnit) Release() {
	if u == nil || u.released {
		return
	}
	u.released = true
	if u.handle != InvalidHandle {
		u.dev.DeleteShader(u.handle)
	}
}
