package eloquent

import (
	"fmt"
	"strconv"
	"strings"
)

// stringEscaper is a replacer table instead of a hand-rolled switch,
// for the handful of characters a re-readable string literal needs
// escaped.
var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

var charNames = map[byte]string{
	' ':  "space",
	'\n': "newline",
}

// Write renders v as Eloquent source text. For every kind the reader
// can produce, Write's output reads back to an equal value (spec §8's
// reader/writer round-trip property); for kinds the reader never
// produces (functions, ports, environments, exceptions, retaddrs,
// opcodes), it renders an informational #<...> form instead.
func Write(v Value) string {
	var sb strings.Builder
	write(&sb, v)
	return sb.String()
}

func write(sb *strings.Builder, v Value) {
	switch x := v.(type) {
	case Fixnum:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case Character:
		sb.WriteString("#\\")
		if name, ok := charNames[byte(x)]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteByte(byte(x))
		}
	case *Singleton:
		switch x {
		case True:
			sb.WriteString("#t")
		case False:
			sb.WriteString("#f")
		case EmptyList:
			sb.WriteString("()")
		case EOFValue:
			sb.WriteString("#<eof>")
		case Undefined:
			sb.WriteString("#<undefined>")
		default:
			fmt.Fprintf(sb, "#<%s>", x.String())
		}
	case *Float:
		s := strconv.FormatFloat(x.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		sb.WriteString(s)
	case *String:
		sb.WriteByte('"')
		sb.WriteString(stringEscaper.Replace(string(x.Data)))
		sb.WriteByte('"')
	case *Unicode:
		sb.WriteByte('"')
		sb.WriteString(stringEscaper.Replace(string(x.Runes)))
		sb.WriteByte('"')
	case *Symbol:
		sb.WriteString(x.Name)
	case *Pair:
		writePair(sb, x)
	case *Vector:
		sb.WriteByte('[')
		for i := 0; i < x.Len(); i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			elt, _ := x.Ref(i)
			write(sb, elt)
		}
		sb.WriteByte(']')
	case *Package:
		fmt.Fprintf(sb, "#<package %s>", x.Name)
	case *Type:
		fmt.Fprintf(sb, "#<type %s>", x.Name)
	case *Function:
		name := x.Name
		if name == "" {
			name = "anonymous"
		}
		fmt.Fprintf(sb, "#<function %s>", name)
	case *Primitive:
		fmt.Fprintf(sb, "#<primitive %s>", x.Name)
	case *Environment:
		sb.WriteString("#<environment>")
	case *InputPort:
		fmt.Fprintf(sb, "#<input-port %s>", x.Port.Name())
	case *OutputPort:
		sb.WriteString("#<output-port>")
	case *Retaddr:
		sb.WriteString("#<retaddr>")
	case *OpcodeValue:
		fmt.Fprintf(sb, "#<opcode %s>", x.Mnemonic)
	case *Exception:
		tag := "?"
		if x.Tag != nil {
			tag = x.Tag.Name
		}
		fmt.Fprintf(sb, "#<exception %s: %s>", tag, x.Message)
	default:
		fmt.Fprintf(sb, "#<%T>", v)
	}
}

// writePair special-cases the (quote x), (quasiquote x), (unquote x),
// and (unquote-splicing x) shapes so they round-trip through their
// reader-macro spellings rather than printing as a raw three-element
// list.
func writePair(sb *strings.Builder, p *Pair) {
	if sym, ok := p.Head.(*Symbol); ok {
		if inner, ok := singleArg(p.Tail); ok {
			switch sym.Name {
			case "quote":
				sb.WriteByte('\'')
				write(sb, inner)
				return
			case "quasiquote":
				sb.WriteByte('`')
				write(sb, inner)
				return
			case "unquote":
				sb.WriteByte(',')
				write(sb, inner)
				return
			case "unquote-splicing":
				sb.WriteString(",@")
				write(sb, inner)
				return
			}
		}
	}

	sb.WriteByte('(')
	write(sb, p.Head)
	rest := p.Tail
	for {
		switch r := rest.(type) {
		case *Pair:
			sb.WriteByte(' ')
			write(sb, r.Head)
			rest = r.Tail
		case *Singleton:
			if r == EmptyList {
				sb.WriteByte(')')
				return
			}
			sb.WriteString(" . ")
			write(sb, r)
			sb.WriteByte(')')
			return
		default:
			sb.WriteString(" . ")
			write(sb, rest)
			sb.WriteByte(')')
			return
		}
	}
}

func singleArg(tail Value) (Value, bool) {
	p, ok := tail.(*Pair)
	if !ok || p.Tail != EmptyList {
		return nil, false
	}
	return p.Head, true
}
