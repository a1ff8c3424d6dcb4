package gui

// TextBox is the single-line ODE field. It implements session.TextField.
type TextBox struct {
	Focused bool
	Limit   int

	value []rune
}

func NewTextBox(limit int) *TextBox {
	return &TextBox{Limit: limit}
}

func (t *TextBox) Text() string { return string(t.value) }

func (t *TextBox) SetText(s string) {
	t.value = []rune(s)
	if t.Limit > 0 && len(t.value) > t.Limit {
		t.value = t.value[:t.Limit]
	}
}

// Insert appends a printable rune.
func (t *TextBox) Insert(r rune) {
	if r < 0x20 || r == 0x7f {
		return
	}
	if t.Limit > 0 && len(t.value) >= t.Limit {
		return
	}
	t.value = append(t.value, r)
}

func (t *TextBox) Backspace() {
	if len(t.value) > 0 {
		t.value = t.value[:len(t.value)-1]
	}
}
