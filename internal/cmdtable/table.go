package cmdtable

// Table maps sound command bytes to OKI phrase numbers for one title.
// Entry 0 is always 0 and any entry may be 0 when the command has no
// sample of its own.
type Table struct {
	name    string
	entries []uint8
}

func newTable(name string, entries []uint8) Table {
	return Table{name: name, entries: entries}
}

func (t Table) Name() string { return t.name }

// Len returns the exclusive upper bound of valid command bytes.
func (t Table) Len() int { return len(t.entries) }

// Contains reports whether cmd indexes an entry of the table.
func (t Table) Contains(cmd uint8) bool { return int(cmd) < len(t.entries) }

// Lookup returns the sample for cmd. Commands past the end of the table are
// never read; ok is false for them.
func (t Table) Lookup(cmd uint8) (sample uint8, ok bool) {
	if !t.Contains(cmd) {
		return 0, false
	}
	return t.entries[cmd], true
}

// Mapped returns the commands that resolve to a non-zero sample, in order.
func (t Table) Mapped() []uint8 {
	var out []uint8
	for i, s := range t.entries {
		if s != 0 {
			out = append(out, uint8(i))
		}
	}
	return out
}
