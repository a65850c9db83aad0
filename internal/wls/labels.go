package wls

// LabelTable maps label names to statement indices.
type LabelTable struct {
	idx map[string]int
}

func NewLabelTable() *LabelTable {
	return &LabelTable{idx: map[string]int{}}
}

// BuildLabels scans prog once. A repeated name fails at the repeat.
func BuildLabels(prog *Program) (*LabelTable, error) {
	lt := NewLabelTable()
	if prog == nil {
		return lt, nil
	}
	for i, st := range prog.Stmts {
		l, ok := st.(*LabelStmt)
		if !ok {
			continue
		}
		if err := lt.Add(l.Tok, i); err != nil {
			return nil, err
		}
	}
	return lt, nil
}

func (t *LabelTable) Add(tok Tok, index int) error {
	if _, ok := t.idx[tok.Lit]; ok {
		return rtErr(tok, "Label %s is already defined", tok.Lit)
	}
	t.idx[tok.Lit] = index
	return nil
}

// Lookup resolves a GoTo target. The error is attributed to at, the GoTo
// keyword, not to the label reference.
func (t *LabelTable) Lookup(name string, at Tok) (int, error) {
	i, ok := t.idx[name]
	if !ok {
		return 0, rtErr(at, "Label %s doesn't exist", name)
	}
	return i, nil
}

func (t *LabelTable) Len() int { return len(t.idx) }
