// FILE: record.go
package log

import (
	"runtime"
	"unsafe"
)

// ArgCap is the inline storage capacity, in bytes, for a Record's captured
// argument tuple. The source this library is modeled on varied this value
// across revisions (24, 72, 80); 64 is picked here, documented in DESIGN.md.
const ArgCap = 64

// destroyer is implemented by captured argument types that hold a resource
// needing explicit release when their owning Record is destroyed (e.g. a
// ref-counted test sentinel). Types that don't implement it are left alone.
type destroyer interface {
	Destroy()
}

// Record is a type-erased, fixed-size, movable log event. Producers build
// one on the stack and hand it to a Ring; nothing about a Record's
// construction allocates on the heap.
type Record struct {
	level    Level
	goid     int64
	template string

	storage [ArgCap]byte

	// format, destroy and move are closure-free instantiations of generic
	// functions assigned directly to these fields (not behind a pointer),
	// which is what keeps Record construction allocation-free: a captureless
	// function value is a static code pointer copied by value, not a heap
	// object. A Record with no captured arguments leaves all three nil.
	format  func(out []byte, template string, storage *[ArgCap]byte) []byte
	destroy func(storage *[ArgCap]byte)
	move    func(dst, src *[ArgCap]byte)
}

// moveStorage relocates the inline byte buffer. Because arg_storage always
// holds flat value bytes (Go has no move constructors to honor — slice and
// pointer headers are trivially copyable), a single non-generic byte copy is
// a correct "move" for every captured type; no per-type instantiation of
// this trampoline is required.
func moveStorage(dst, src *[ArgCap]byte) {
	*dst = *src
}

// moveFrom relocates rec's payload from src and leaves src's vtable nulled,
// matching the Record's move-only discipline: after a move, src's destroy
// is a no-op.
func (rec *Record) moveFrom(src *Record) {
	rec.level = src.level
	rec.goid = src.goid
	rec.template = src.template
	rec.format = src.format
	rec.destroy = src.destroy
	rec.move = src.move
	if src.move != nil {
		src.move(&rec.storage, &src.storage)
	} else {
		rec.storage = src.storage
	}
	src.format = nil
	src.destroy = nil
	src.move = nil
}

// Destroy runs the captured arguments' destructor, if any. Safe to call
// more than once: after the first call the vtable is nulled.
func (rec *Record) Destroy() {
	if rec.destroy != nil {
		rec.destroy(&rec.storage)
		rec.destroy = nil
	}
}

// Format renders the record's template against its captured arguments,
// appending to out. A Record with no captured arguments renders its
// template verbatim (no placeholders are substituted, matching the "zero
// arguments" boundary case).
func (rec *Record) Format(out []byte) []byte {
	if rec.format == nil {
		return append(out, rec.template...)
	}
	return rec.format(out, rec.template, &rec.storage)
}

func argTooLarge(size int) {
	panic(fmtErrorf("captured argument tuple of %d bytes exceeds ArgCap (%d); "+
		"Go generics cannot enforce this at build time, so it surfaces as a panic "+
		"at Record construction instead of the build failure languages with "+
		"static_assert can give you", size, ArgCap))
}

// newRecord0 builds a Record with no captured arguments.
func newRecord0(level Level, template string) Record {
	return Record{level: level, goid: currentGoroutineID(), template: template}
}

// newRecord1 builds a Record capturing a single typed argument without
// allocating: the value is packed into the inline storage and the vtable
// fields are set to closure-free instantiations of the generic trampolines
// below, specialized on A.
func newRecord1[A any](level Level, template string, a A) Record {
	if int(unsafe.Sizeof(a)) > ArgCap {
		argTooLarge(int(unsafe.Sizeof(a)))
	}
	rec := Record{level: level, goid: currentGoroutineID(), template: template}
	*(*A)(unsafe.Pointer(&rec.storage[0])) = a
	rec.format = formatArgs1[A]
	rec.destroy = destroyArgs1[A]
	rec.move = moveStorage
	return rec
}

func formatArgs1[A any](out []byte, template string, storage *[ArgCap]byte) []byte {
	a := *(*A)(unsafe.Pointer(&storage[0]))
	return renderTemplate(out, template, 1, func(out []byte, idx int, spec placeholderSpec) []byte {
		return appendValueSpec(out, a, spec)
	})
}

func destroyArgs1[A any](storage *[ArgCap]byte) {
	a := *(*A)(unsafe.Pointer(&storage[0]))
	if d, ok := any(a).(destroyer); ok {
		d.Destroy()
	}
}

// pair is the tuple layout backing Push2's inline storage.
type pair[A, B any] struct {
	a A
	b B
}

// newRecord2 is the two-argument counterpart of newRecord1.
func newRecord2[A, B any](level Level, template string, a A, b B) Record {
	var tup pair[A, B]
	if int(unsafe.Sizeof(tup)) > ArgCap {
		argTooLarge(int(unsafe.Sizeof(tup)))
	}
	tup.a, tup.b = a, b
	rec := Record{level: level, goid: currentGoroutineID(), template: template}
	*(*pair[A, B])(unsafe.Pointer(&rec.storage[0])) = tup
	rec.format = formatArgs2[A, B]
	rec.destroy = destroyArgs2[A, B]
	rec.move = moveStorage
	return rec
}

func formatArgs2[A, B any](out []byte, template string, storage *[ArgCap]byte) []byte {
	tup := *(*pair[A, B])(unsafe.Pointer(&storage[0]))
	return renderTemplate(out, template, 2, func(out []byte, idx int, spec placeholderSpec) []byte {
		if idx == 0 {
			return appendValueSpec(out, tup.a, spec)
		}
		return appendValueSpec(out, tup.b, spec)
	})
}

func destroyArgs2[A, B any](storage *[ArgCap]byte) {
	tup := *(*pair[A, B])(unsafe.Pointer(&storage[0]))
	if d, ok := any(tup.a).(destroyer); ok {
		d.Destroy()
	}
	if d, ok := any(tup.b).(destroyer); ok {
		d.Destroy()
	}
}

// triple is the tuple layout backing Push3's inline storage.
type triple[A, B, C any] struct {
	a A
	b B
	c C
}

// newRecord3 is the three-argument counterpart of newRecord1. Go's lack of
// variadic generics caps the zero-allocation fast path here; wider call
// sites use the allocating Push(...any) escape hatch instead.
func newRecord3[A, B, C any](level Level, template string, a A, b B, c C) Record {
	var tup triple[A, B, C]
	if int(unsafe.Sizeof(tup)) > ArgCap {
		argTooLarge(int(unsafe.Sizeof(tup)))
	}
	tup.a, tup.b, tup.c = a, b, c
	rec := Record{level: level, goid: currentGoroutineID(), template: template}
	*(*triple[A, B, C])(unsafe.Pointer(&rec.storage[0])) = tup
	rec.format = formatArgs3[A, B, C]
	rec.destroy = destroyArgs3[A, B, C]
	rec.move = moveStorage
	return rec
}

func formatArgs3[A, B, C any](out []byte, template string, storage *[ArgCap]byte) []byte {
	tup := *(*triple[A, B, C])(unsafe.Pointer(&storage[0]))
	return renderTemplate(out, template, 3, func(out []byte, idx int, spec placeholderSpec) []byte {
		switch idx {
		case 0:
			return appendValueSpec(out, tup.a, spec)
		case 1:
			return appendValueSpec(out, tup.b, spec)
		default:
			return appendValueSpec(out, tup.c, spec)
		}
	})
}

func destroyArgs3[A, B, C any](storage *[ArgCap]byte) {
	tup := *(*triple[A, B, C])(unsafe.Pointer(&storage[0]))
	if d, ok := any(tup.a).(destroyer); ok {
		d.Destroy()
	}
	if d, ok := any(tup.b).(destroyer); ok {
		d.Destroy()
	}
	if d, ok := any(tup.c).(destroyer); ok {
		d.Destroy()
	}
}

// newRecordDynamic is the allocating escape hatch for call sites that can't
// be expressed with up to three statically typed arguments: args is a
// regular Go slice (already heap-allocated by its variadic ...any call
// site), and only its 24-byte slice header is packed into arg_storage. This
// is the "closed set of primitives plus an escape hatch" strategy the
// design notes call out as an alternative to per-arity monomorphization.
func newRecordDynamic(level Level, template string, args []any) Record {
	rec := Record{level: level, goid: currentGoroutineID(), template: template}
	*(*[]any)(unsafe.Pointer(&rec.storage[0])) = args
	rec.format = formatArgsDynamic
	rec.destroy = destroyArgsDynamic
	rec.move = moveStorage
	return rec
}

func formatArgsDynamic(out []byte, template string, storage *[ArgCap]byte) []byte {
	args := *(*[]any)(unsafe.Pointer(&storage[0]))
	return renderTemplate(out, template, len(args), func(out []byte, idx int, spec placeholderSpec) []byte {
		return appendValueSpec(out, args[idx], spec)
	})
}

func destroyArgsDynamic(storage *[ArgCap]byte) {
	args := *(*[]any)(unsafe.Pointer(&storage[0]))
	for _, v := range args {
		if d, ok := v.(destroyer); ok {
			d.Destroy()
		}
	}
}

// currentGoroutineID extracts the scheduler's goroutine id from a
// stack-local buffer. runtime.Stack writing into an array that never
// escapes this function keeps the lookup allocation-free; the id itself is
// best-effort and exists only for diagnostic rendering, never for
// correctness.
func currentGoroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id int64
	// buf holds "goroutine 123 [running]:\n..." - skip the leading word.
	i := 0
	for i < n && buf[i] != ' ' {
		i++
	}
	i++
	for i < n && buf[i] >= '0' && buf[i] <= '9' {
		id = id*10 + int64(buf[i]-'0')
		i++
	}
	return id
}
