package types

import "strings"

// Process describes one external tool invocation. Arguments[0] is the
// program; the rest are passed verbatim.
type Process struct {
	Arguments []string
}

func NewProcess(arguments ...string) Process {
	return Process{Arguments: append([]string(nil), arguments...)}
}

func (p Process) Program() string {
	if len(p.Arguments) == 0 {
		return ""
	}
	return p.Arguments[0]
}

func (p Process) Args() []string {
	if len(p.Arguments) < 2 {
		return nil
	}
	return p.Arguments[1:]
}

func (p Process) Equal(other Process) bool {
	if len(p.Arguments) != len(other.Arguments) {
		return false
	}
	for i := range p.Arguments {
		if p.Arguments[i] != other.Arguments[i] {
			return false
		}
	}
	return true
}

func (p Process) String() string {
	return strings.Join(p.Arguments, " ")
}
