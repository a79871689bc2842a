package eloquent

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Universe is the process-wide mutable context spec §5 and §9 call
// for explicitly: "Group [packages, ports, gensym counter, debug/check
// flags] into a single VM context and pass by reference to every
// subsystem; avoid re-introducing hidden globals." Every subsystem
// (reader, compiler, VM, macro expander) takes a *Universe rather than
// touching package-level mutable state, so multiple independent
// interpreters can coexist in the same process (most visibly, in this
// repo's own tests).
type Universe struct {
	PkgLisp *Package
	PkgUser *Package
	Current *Package
	packages map[string]*Package

	gensymCounter int

	StandardIn  io.ByteReader
	StandardOut io.Writer
	StandardErr io.Writer

	StdinPort  *InputPort
	StdoutPort *OutputPort
	StderrPort *OutputPort

	Config *VMConfig

	primitives map[string]*Primitive
	shortcuts  map[string]func() Instruction

	specials specialSymbols
}

// specialSymbols caches the Lisp-package symbols the compiler
// dispatches on by identity, avoiding a package lookup per compiled
// form (spec §9 "Global state", object.c's the_*_symbol globals,
// scoped here to one Universe instead of the whole process).
type specialSymbols struct {
	quote, set, iff, lambda, begin, catch, tagbody, goTo          *Symbol
	quasiquote, unquote, unquoteSplicing, dot                     *Symbol
}

// NewUniverse allocates a Universe with the Lisp and User packages
// and the standard ports wired to os.Stdin/Stdout/Stderr, but does
// not yet install primitives or bootstrap macros. Callers normally
// want Init, which does the rest of spec §6's "init()" contract.
func NewUniverse() *Universe {
	u := &Universe{
		PkgLisp:     newPackage("LISP"),
		StandardIn:  bufio.NewReader(os.Stdin),
		StandardOut: os.Stdout,
		StandardErr: os.Stderr,
		Config:      NewVMConfig(),
		primitives:  make(map[string]*Primitive),
		shortcuts:   make(map[string]func() Instruction),
		packages:    make(map[string]*Package),
	}
	u.PkgUser = newPackage("USER")
	u.PkgUser.Use(u.PkgLisp)
	u.Current = u.PkgUser
	u.packages["LISP"] = u.PkgLisp
	u.packages["USER"] = u.PkgUser

	u.StdinPort = &InputPort{Port: NewPort(u.StandardIn, "<stdin>")}
	u.StdoutPort = &OutputPort{Sink: writerPort{u.StandardOut}}
	u.StderrPort = &OutputPort{Sink: writerPort{u.StandardErr}}

	s := &u.specials
	s.quote = u.PkgLisp.Intern("quote")
	s.set = u.PkgLisp.Intern("set")
	s.iff = u.PkgLisp.Intern("if")
	s.lambda = u.PkgLisp.Intern("lambda")
	s.begin = u.PkgLisp.Intern("begin")
	s.catch = u.PkgLisp.Intern("catch")
	s.tagbody = u.PkgLisp.Intern("tagbody")
	s.goTo = u.PkgLisp.Intern("goto")
	s.quasiquote = u.PkgLisp.Intern("quasiquote")
	s.unquote = u.PkgLisp.Intern("unquote")
	s.unquoteSplicing = u.PkgLisp.Intern("unquote-splicing")
	s.dot = u.PkgLisp.Intern(".")
	return u
}

// Init performs the host-facing init() contract of spec §6: besides
// what NewUniverse already built, it registers every primitive
// catalogue group (primitives_*.go), wires opcode shortcuts, installs
// the bootstrap quasiquote macro, and attempts to load a local
// init.scm, warning rather than failing if it's absent.
func (u *Universe) Init() error {
	registerArithmetic(u)
	registerChar(u)
	registerString(u)
	registerPairs(u)
	registerSymbols(u)
	registerPackages(u)
	registerPorts(u)
	registerExceptions(u)
	registerVectors(u)

	installBootstrapMacros(u)

	if err := u.loadInitFile("init.scm"); err != nil {
		fmt.Fprintf(u.StandardErr, "warning: %s\n", err)
	}
	return nil
}

// DefinePrimitive registers fn under name in the Lisp package and
// records it for CALL/PRIM dispatch (spec §6 "Primitive registration
// API"). shortcut, if non-nil, is consulted by the compiler to emit a
// fused opcode instead of a general CALL (spec §4.3, §9).
func (u *Universe) DefinePrimitive(name string, arity int, rest bool, fn PrimitiveFn, sig []*Type, shortcut func() Instruction) {
	p := &Primitive{Name: name, Arity: arity, Rest: rest, Fn: fn, Signature: sig}
	u.primitives[name] = p
	sym := u.PkgLisp.Intern(name)
	sym.SetValue(p)
	if shortcut != nil {
		u.shortcuts[name] = shortcut
	}
}

// Primitive looks up a registered primitive by name.
func (u *Universe) Primitive(name string) (*Primitive, bool) {
	p, ok := u.primitives[name]
	return p, ok
}

// ShortcutFor returns the fused-opcode constructor for a primitive, if
// the compiler should emit one instead of a general CALL.
func (u *Universe) ShortcutFor(name string) (func() Instruction, bool) {
	fn, ok := u.shortcuts[name]
	return fn, ok
}

// FindPackage looks up a package by name across the whole Universe,
// not just the ones reachable via Current's use-list.
func (u *Universe) FindPackage(name string) (*Package, bool) {
	p, ok := u.packages[name]
	return p, ok
}

// MakePackage creates and registers a new, empty package, or returns
// the existing one if name is already taken.
func (u *Universe) MakePackage(name string) *Package {
	if p, ok := u.packages[name]; ok {
		return p
	}
	p := newPackage(name)
	u.packages[name] = p
	return p
}

// Gensym returns a freshly interned, uninterned-looking symbol in the
// current package, backing the `gensym` primitive. The compiler's
// labels do not go through it; they come from the Go-side label
// counter in instructions.go.
func (u *Universe) Gensym(prefix string) *Symbol {
	u.gensymCounter++
	return u.Current.Intern(fmt.Sprintf("%s%d", prefix, u.gensymCounter))
}

// loadInitFile loads and evaluates a bootstrap source file if present
// (spec §6: "load a local file init.scm if present (warn on absence,
// do not fail)"). The bootstrap library's contents are out of scope
// (spec §1); this only wires the loading mechanism.
func (u *Universe) loadInitFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s not found, skipping bootstrap load", path)
		}
		return err
	}
	port := NewPort(NewMemReader(data), path)
	reader := NewReader(u, port)
	for {
		form, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := u.Eval(form); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
}
