// Package capability classifies element types by the lifecycle work they need.
//
// Element types are plain Go values. A type opts into non-trivial lifecycle by
// implementing the hook interfaces (Initer, Destroyer, Copier, Mover,
// CopyAssigner, MoveAssigner) on its pointer type. A type without hooks is
// handled as raw bytes: constructed by zero-filling, copied and moved with the
// builtin copy, destroyed by doing nothing (or by clearing the slot when it holds
// pointers, so the collector can reclaim what it referenced).
//
// The facts are computed with reflection the first time a type is seen and
// cached for the life of the process, so every later query is a map lookup.
package capability
