package printer

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Name turns a display id into letters: a, b, ..., z, aa, ba, ca, ...
// The least significant letter comes first.
func Name(id int) string {
	if id < 0 {
		return ""
	}
	buf := make([]byte, 0, 4)
	for {
		buf = append(buf, alphabet[id%len(alphabet)])
		id /= len(alphabet)
		if id == 0 {
			break
		}
	}
	return string(buf)
}

// nameTable maps display ids to names, skipping names reserved for free
// variables and combinators so a binder can never capture one.
type nameTable struct {
	reserved map[string]bool
	names    []string
	next     int
}

func newNameTable(reserved ...[]string) *nameTable {
	nt := &nameTable{}
	for _, names := range reserved {
		for _, name := range names {
			if nt.reserved == nil {
				nt.reserved = make(map[string]bool)
			}
			nt.reserved[name] = true
		}
	}
	return nt
}

func (nt *nameTable) name(id int) string {
	if nt.reserved == nil {
		return Name(id)
	}
	for len(nt.names) <= id {
		candidate := Name(nt.next)
		nt.next++
		if !nt.reserved[candidate] {
			nt.names = append(nt.names, candidate)
		}
	}
	return nt.names[id]
}
