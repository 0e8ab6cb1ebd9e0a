package capability

// Initer is implemented by element types whose default construction is
// more than zero-filling the slot.
type Initer interface {
	Init()
}

// Destroyer is implemented by element types that release resources when an
// element is destroyed. Destroy must accept the zero value: a type with no Copy
// or Move hook is moved by copying its bytes and zeroing the source.
type Destroyer interface {
	Destroy()
}

// Copier copy-constructs the receiver from src. The receiver is a zeroed slot.
type Copier[T any] interface {
	CopyFrom(src *T)
}

// Mover move-constructs the receiver from src. The receiver is a zeroed slot and
// src must be left in a state that Destroy (if any) accepts.
type Mover[T any] interface {
	MoveFrom(src *T)
}

// CopyAssigner copy-assigns src into a live receiver.
type CopyAssigner[T any] interface {
	AssignFrom(src *T)
}

// MoveAssigner move-assigns src into a live receiver.
type MoveAssigner[T any] interface {
	MoveAssignFrom(src *T)
}

// Equaler reports element equality.
type Equaler[T any] interface {
	Equal(other *T) bool
}

// Lesser reports strict element ordering.
type Lesser[T any] interface {
	Less(other *T) bool
}
