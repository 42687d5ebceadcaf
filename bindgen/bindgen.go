package bindgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

var (
	// ErrLoad is returned when the source package cannot be loaded.
	ErrLoad = errors.New("bindgen: package load failed")

	// ErrNoAPI is returned when the package declares no API interface.
	ErrNoAPI = errors.New("bindgen: package has no API interface")

	// ErrUnsupported is returned for types with no C representation.
	ErrUnsupported = errors.New("bindgen: unsupported type")

	// ErrNameClash is returned when two Go types map to one C name.
	ErrNameClash = errors.New("bindgen: C name clash")
)

const (
	idTypeName  = "ID"
	apiTypeName = "API"
	idCType     = "WGPUId"
)

// Config controls header output. Zero fields take the defaults shown.
type Config struct {
	// Prefix is prepended to every type name ("WGPU"). Its lower-case
	// form followed by an underscore prefixes function names.
	Prefix string

	// Guard is the include guard macro ("WGPU_H").
	Guard string

	// Remote is the macro that selects 32-bit integer identifiers instead
	// of pointers ("WGPU_REMOTE").
	Remote string
}

func (c Config) withDefaults() Config {
	if c.Prefix == "" {
		c.Prefix = "WGPU"
	}
	if c.Guard == "" {
		c.Guard = c.Prefix + "_H"
	}
	if c.Remote == "" {
		c.Remote = c.Prefix + "_REMOTE"
	}
	return c
}

// Generate loads the package matching pattern and returns its header.
func Generate(cfg Config, pattern string) ([]byte, error) {
	loadCfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedDeps | packages.NeedTypes,
	}
	pkgs, err := packages.Load(loadCfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("%w: pattern %q matched %d packages", ErrLoad, pattern, len(pkgs))
	}
	var msgs []string
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			msgs = append(msgs, e.Error())
		}
	})
	if len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrLoad, strings.Join(msgs, "; "))
	}
	return Header(cfg, pkgs[0].Types)
}

// Header returns the C header for a type-checked package.
func Header(cfg Config, pkg *types.Package) ([]byte, error) {
	g := &generator{
		cfg:    cfg.withDefaults(),
		pkg:    pkg,
		done:   make(map[*types.TypeName]bool),
		cnames: make(map[string]*types.TypeName),
	}
	return g.run()
}

type generator struct {
	cfg Config
	pkg *types.Package

	id  *types.TypeName
	api *types.TypeName

	done   map[*types.TypeName]bool
	cnames map[string]*types.TypeName

	scalars  bytes.Buffer
	forwards bytes.Buffer
	structs  bytes.Buffer
	funcs    bytes.Buffer
}

func (g *generator) run() ([]byte, error) {
	scope := g.pkg.Scope()
	g.id, _ = scope.Lookup(idTypeName).(*types.TypeName)
	g.api, _ = scope.Lookup(apiTypeName).(*types.TypeName)
	if g.api == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoAPI, g.pkg.Path())
	}
	iface, ok := g.api.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is not an interface", ErrNoAPI, g.pkg.Path(), apiTypeName)
	}

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() || tn == g.id || tn == g.api {
			continue
		}
		if _, isIface := tn.Type().Underlying().(*types.Interface); isIface {
			continue
		}
		if err := g.declare(tn); err != nil {
			return nil, err
		}
	}

	methods := make([]*types.Func, iface.NumMethods())
	for i := range methods {
		methods[i] = iface.Method(i)
	}
	sort.SliceStable(methods, func(i, j int) bool { return methods[i].Pos() < methods[j].Pos() })
	for _, m := range methods {
		if err := g.function(m); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "/* Code generated by wgsafe-bindgen from %s. DO NOT EDIT. */\n\n", g.pkg.Path())
	fmt.Fprintf(&out, "#ifndef %s\n#define %s\n\n", g.cfg.Guard, g.cfg.Guard)
	out.WriteString("#include <stdbool.h>\n#include <stdint.h>\n\n")
	fmt.Fprintf(&out, "#ifdef %s\ntypedef uint32_t %s;\n#else\ntypedef void *%s;\n#endif\n\n", g.cfg.Remote, idCType, idCType)
	for _, section := range []*bytes.Buffer{&g.scalars, &g.forwards, &g.structs, &g.funcs} {
		if section.Len() == 0 {
			continue
		}
		out.Write(section.Bytes())
		out.WriteByte('\n')
	}
	fmt.Fprintf(&out, "#endif /* %s */\n", g.cfg.Guard)
	return out.Bytes(), nil
}

// cname returns the prefixed C name of tn and records it so that two
// distinct Go types never share one.
func (g *generator) cname(tn *types.TypeName) (string, error) {
	name := g.cfg.Prefix + tn.Name()
	if prev, ok := g.cnames[name]; ok && prev != tn {
		return "", fmt.Errorf("%w: %s and %s both map to %s", ErrNameClash, prev, tn, name)
	}
	g.cnames[name] = tn
	return name, nil
}

// declare emits tn after every type it holds by value.
func (g *generator) declare(tn *types.TypeName) error {
	if g.done[tn] || tn == g.id {
		return nil
	}
	g.done[tn] = true

	name, err := g.cname(tn)
	if err != nil {
		return err
	}
	switch u := tn.Type().Underlying().(type) {
	case *types.Basic:
		ctype, ok := basicC[u.Kind()]
		if !ok {
			return fmt.Errorf("%w: %s has underlying %s", ErrUnsupported, tn, u)
		}
		g.enum(tn, name)
		fmt.Fprintf(&g.scalars, "typedef %s %s;\n\n", ctype, name)
		return nil
	case *types.Struct:
		return g.record(name, u)
	default:
		return fmt.Errorf("%w: %s has underlying %T", ErrUnsupported, tn, u)
	}
}

// enum writes the named constants of tn. Only constants declared in the
// generated package are listed; foreign types become bare typedefs.
func (g *generator) enum(tn *types.TypeName, name string) {
	if tn.Pkg() != g.pkg {
		return
	}
	type member struct {
		name string
		val  constant.Value
	}
	var members []member
	scope := g.pkg.Scope()
	for _, n := range scope.Names() {
		c, ok := scope.Lookup(n).(*types.Const)
		if !ok || !c.Exported() || !types.Identical(c.Type(), tn.Type()) {
			continue
		}
		members = append(members, member{name: n, val: c.Val()})
	}
	if len(members) == 0 {
		return
	}
	sort.SliceStable(members, func(i, j int) bool {
		return constant.Compare(members[i].val, token.LSS, members[j].val)
	})

	fmt.Fprintf(&g.scalars, "enum %s {\n", name)
	for _, m := range members {
		suffix := strings.TrimPrefix(m.name, tn.Name())
		if suffix == "" || suffix == m.name {
			suffix = m.name
		}
		fmt.Fprintf(&g.scalars, "  %s_%s = %s,\n", name, suffix, m.val.ExactString())
	}
	g.scalars.WriteString("};\n")
}

// resolve returns t with aliases of unnamed composite types replaced by
// the type they stand for. Aliases of named and basic types are kept so
// that they get a C name of their own.
func resolve(t types.Type) types.Type {
	a, ok := t.(*types.Alias)
	if !ok {
		return t
	}
	switch types.Unalias(a).(type) {
	case *types.Named, *types.Basic:
		return a
	}
	return types.Unalias(a)
}

// alias emits a typedef of a under its own name. Scalar aliases map
// straight to their C integer type, so the aliased type is never declared
// on their behalf and cannot claim a C name used by the package.
func (g *generator) alias(a *types.Alias) error {
	tn := a.Obj()
	if g.done[tn] {
		return nil
	}
	g.done[tn] = true

	name, err := g.cname(tn)
	if err != nil {
		return err
	}
	target := types.Unalias(a)
	if b, ok := target.Underlying().(*types.Basic); ok {
		ctype, ok := basicC[b.Kind()]
		if !ok {
			return fmt.Errorf("%w: %s has underlying %s", ErrUnsupported, tn, b)
		}
		fmt.Fprintf(&g.scalars, "typedef %s %s;\n\n", ctype, name)
		return nil
	}
	if err := g.require(target); err != nil {
		return err
	}
	ctype, err := g.ctype(target)
	if err != nil {
		return err
	}
	fmt.Fprintf(&g.forwards, "typedef %s %s;\n", ctype, name)
	return nil
}

func (g *generator) record(name string, s *types.Struct) error {
	fields := make([]string, 0, s.NumFields())
	for i := range s.NumFields() {
		f := s.Field(i)
		if err := g.require(f.Type()); err != nil {
			return fmt.Errorf("%s.%s: %w", name, f.Name(), err)
		}
		decl, err := g.field(snake(f.Name()), f.Type())
		if err != nil {
			return fmt.Errorf("%s.%s: %w", name, f.Name(), err)
		}
		fields = append(fields, decl)
	}

	fmt.Fprintf(&g.forwards, "typedef struct %s %s;\n", name, name)
	fmt.Fprintf(&g.structs, "struct %s {\n", name)
	for _, f := range fields {
		fmt.Fprintf(&g.structs, "  %s;\n", f)
	}
	g.structs.WriteString("};\n\n")
	return nil
}

func (g *generator) field(name string, t types.Type) (string, error) {
	t = resolve(t)
	if arr, ok := t.(*types.Array); ok {
		elem, err := g.ctype(arr.Elem())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s[%d]", elem, name, arr.Len()), nil
	}
	ctype, err := g.ctype(t)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(ctype, "*") {
		return ctype + name, nil
	}
	return ctype + " " + name, nil
}

// require declares every named type reachable from t.
func (g *generator) require(t types.Type) error {
	switch t := resolve(t).(type) {
	case *types.Alias:
		return g.alias(t)
	case *types.Named:
		return g.declare(t.Obj())
	case *types.Pointer:
		return g.require(t.Elem())
	case *types.Array:
		return g.require(t.Elem())
	}
	return nil
}

func (g *generator) ctype(t types.Type) (string, error) {
	switch t := resolve(t).(type) {
	case *types.Alias:
		return g.cname(t.Obj())
	case *types.Named:
		if t.Obj() == g.id {
			return idCType, nil
		}
		return g.cname(t.Obj())
	case *types.Basic:
		if ctype, ok := basicC[t.Kind()]; ok {
			return ctype, nil
		}
	case *types.Pointer:
		elem, err := g.ctype(t.Elem())
		if err != nil {
			return "", err
		}
		return "const " + elem + " *", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, t)
}

func (g *generator) function(m *types.Func) error {
	sig := m.Type().(*types.Signature)

	ret := "void"
	switch sig.Results().Len() {
	case 0:
	case 1:
		r := sig.Results().At(0).Type()
		if err := g.require(r); err != nil {
			return err
		}
		var err error
		if ret, err = g.ctype(r); err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
	default:
		return fmt.Errorf("%w: %s returns %d values", ErrUnsupported, m.Name(), sig.Results().Len())
	}

	params := make([]string, sig.Params().Len())
	for i := range params {
		p := sig.Params().At(i)
		if err := g.require(p.Type()); err != nil {
			return err
		}
		name := snake(p.Name())
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		decl, err := g.field(name, p.Type())
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
		params[i] = decl
	}
	list := "void"
	if len(params) > 0 {
		list = strings.Join(params, ", ")
	}

	fmt.Fprintf(&g.funcs, "%s %s_%s(%s);\n", ret, strings.ToLower(g.cfg.Prefix), snake(m.Name()), list)
	return nil
}
