package eloquent

import "fmt"

// Assemble resolves every Label placeholder in code to an absolute
// index in the returned code vector and strips the labels themselves
// out, a two-pass backpatching scheme. Jump instructions (IJump,
// IFJump, ICatch) hold a Label value rather than an instruction
// operand naming the index directly, since the compiler emits them
// before it knows how far away the target is.
func Assemble(code []Instruction) ([]Instruction, error) {
	addrs := make(map[int]int, len(code))
	out := make([]Instruction, 0, len(code))
	for _, inst := range code {
		if lbl, ok := inst.(Label); ok {
			addrs[lbl.ID] = len(out)
			continue
		}
		out = append(out, inst)
	}

	resolve := func(lbl Label) (int, error) {
		addr, ok := addrs[lbl.ID]
		if !ok {
			return 0, fmt.Errorf("assemble: unresolved label %d", lbl.ID)
		}
		return addr, nil
	}

	for i, inst := range out {
		switch v := inst.(type) {
		case IJump:
			addr, err := resolve(v.Label)
			if err != nil {
				return nil, err
			}
			out[i] = IJumpAddr{Addr: addr}
		case IFJump:
			addr, err := resolve(v.Label)
			if err != nil {
				return nil, err
			}
			out[i] = IFJumpAddr{Addr: addr}
		case ICatch:
			addr, err := resolve(v.Handler)
			if err != nil {
				return nil, err
			}
			out[i] = ICatchAddr{Addr: addr}
		}
	}
	return out, nil
}

// IJumpAddr, IFJumpAddr, and ICatchAddr are the assembled forms of
// IJump, IFJump, and ICatch: their Label operand has been resolved to
// an absolute index into the surrounding code vector. The VM only
// ever executes code that has passed through Assemble, so it only
// needs to handle these, never the pre-assembly Label-carrying forms.
type IJumpAddr struct{ Addr int }

func (IJumpAddr) Mnemonic() string { return "JUMP" }

type IFJumpAddr struct{ Addr int }

func (IFJumpAddr) Mnemonic() string { return "FJUMP" }

type ICatchAddr struct{ Addr int }

func (ICatchAddr) Mnemonic() string { return "CATCH" }
