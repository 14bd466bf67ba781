// Package mem provides manual memory-management primitives: raw heap blocks
// with explicit initialization state, a capacity-only growable buffer, and
// substitutable allocation policies, all independent of Go's garbage
// collector.
//
// # Overview
//
// Three owning types cover the lifecycle of a manually managed block:
//
//   - Uninit[T]: a block sized for one T, content unspecified
//   - Owned[T]: a block holding exactly one live T
//   - RawBuf[T]: a block sized for N slots of T, tracking capacity only
//
// Uninit is the only path to an Owned: Init (or InitInPlace) writes the
// value and flips the state, so a constructor runs exactly once per live
// value and a destructor (the Dropper hook) runs exactly once per Release
// or Free.
//
// # Allocators
//
// Every owning type takes its memory from an Allocator. Implementations:
//
//   - SystemAllocator (the System package value): page-backed memory from
//     the platform, no release policy
//   - ZeroAllocator (the Zeroizing package value): zero-fills every block on
//     acquire and on release, so residual data never survives reuse
//   - CountingAllocator: wraps another allocator and counts calls, for
//     tests and diagnostics
//
// Constructors without an In suffix use System; the In variants take an
// explicit allocator. Go offers no process-wide allocator override, so
// installing a policy globally is a matter of passing it explicitly.
//
// # Move-only handles
//
// Go cannot statically enforce that a moved-from handle goes unused, so the
// handles emulate linearity: operations that end a handle's life (Init,
// Decompose, Release, IntoRaw, Free, ...) mark it consumed, and every later
// use panics with a "use of consumed" message. All consuming operations
// funnel through one internal path per type, so the release / decompose /
// raw-extraction matrix shares a single consumed check.
//
// # Zero-size requests
//
// Zero-sized types and zero capacities never touch the backing allocator, on
// acquire or on release. Such handles hold the Placeholder pointer: non-nil,
// never dereferenceable, never passed to a platform call.
//
// # Failure classes
//
// Exactly two things can go wrong. A *LayoutError means the request itself
// was invalid (overflow in size*count or alignment rounding); it is a caller
// logic error and is always surfaced. A *AllocError means the platform
// refused a well-formed, non-zero-size request. Try-prefixed entry points
// return these; the non-fallible forms treat allocation failure as fatal and
// panic, keeping the two classes distinguishable. Release paths never fail.
//
// # Garbage collector caveat
//
// Blocks live outside the Go heap, so the collector does not scan them. A
// value stored through this package that contains Go pointers does not keep
// its referents alive; the caller must hold its own references for the
// slot's lifetime.
//
// # Thread safety
//
// Nothing here locks. Handles and allocators are not safe for concurrent
// use; whether values may move or be shared across goroutines is a property
// of the contained type, not something these types add.
//
// # Related packages
//
//   - github.com/joshuapare/memkit/internal/sysalloc: the platform page
//     allocator backing SystemAllocator
package mem
