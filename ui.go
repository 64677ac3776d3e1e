package main

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/avahowell/genpass/pwgen"
	"github.com/avahowell/genpass/secureclip"

	ui "github.com/gizak/termui"
)

// A drag on the length slider ends when no slider key arrived for this long.
const sliderSettle = time.Second

var classKeys = map[string]pwgen.Class{
	"1": pwgen.Lowercase,
	"2": pwgen.Uppercase,
	"3": pwgen.Digits,
	"4": pwgen.Custom,
}

type genpassUI struct {
	mu sync.Mutex
	a  *app

	output  *ui.Par
	classes *ui.List
	chars   *ui.Par
	slider  *ui.Gauge
	flash   *ui.Par
	help    *ui.Par

	editing      bool
	editText     string
	displayFlash bool
	lastSlide    time.Time
	now          func() time.Time
	stop         func()
}

func newGenpassUI(a *app) *genpassUI {
	output := ui.NewPar("")
	output.Height = 3
	output.BorderLabel = "Password"
	output.TextFgColor = ui.ColorYellow

	classes := ui.NewList()
	classes.Height = 6
	classes.BorderLabel = "Characters"

	chars := ui.NewPar("")
	chars.Height = 3
	chars.BorderLabel = "Custom characters"

	slider := ui.NewGauge()
	slider.Height = 3
	slider.BorderLabel = "Length"
	slider.BarColor = ui.ColorCyan

	flash := ui.NewPar("")
	flash.Height = 1
	flash.Width = 60
	flash.Border = false
	flash.Float = ui.AlignBottom

	help := ui.NewPar("[ 1-4 ](fg-black,bg-white) Toggle  [ h/l ](fg-black,bg-white) Length  [ e ](fg-black,bg-white) Edit  [ g ](fg-black,bg-white) Generate  [ c ](fg-black,bg-white) Copy  [ q ](fg-black,bg-white) Quit")
	help.Height = 1
	help.Border = false

	m := &genpassUI{
		a:       a,
		output:  output,
		classes: classes,
		chars:   chars,
		slider:  slider,
		flash:   flash,
		help:    help,
		now:     time.Now,
		stop:    ui.StopLoop,
	}
	m.refresh()
	return m
}

func (m *genpassUI) notify(msg string) {
	m.flash.Text = msg
	m.displayFlash = true
}

// refresh copies the app state into the widgets.
func (m *genpassUI) refresh() {
	m.output.Text = m.a.password

	var items []string
	for key := 1; key <= len(classKeys); key++ {
		c := classKeys[fmt.Sprint(key)]
		mark := " "
		if m.a.classes.Has(c) {
			mark = "x"
		}
		items = append(items, fmt.Sprintf("[%v] %v %v", mark, key, c))
	}
	m.classes.Items = items

	if m.editing {
		m.chars.Text = m.editText + "_"
	} else {
		m.chars.Text = m.a.chars
	}

	m.slider.Percent = (clampLength(m.a.length) - pwgen.MinLength) * 100 / (pwgen.MaxLength - pwgen.MinLength)
	m.slider.Label = fmt.Sprint(m.a.length)
}

func (m *genpassUI) regenerate(live bool) {
	if _, err := m.a.generate(live); err != nil {
		m.notify(err.Error())
	}
}

func clampLength(n int) int {
	return min(max(n, pwgen.MinLength), pwgen.MaxLength)
}

func (m *genpassUI) slide(delta int) {
	n := clampLength(m.a.length + delta)
	if n == m.a.length {
		return
	}
	m.a.length = n
	m.lastSlide = m.now()
	m.regenerate(true)
}

// tick ends a slider drag once the user stopped moving it.
func (m *genpassUI) tick() {
	if m.a.sess.Dragging() && m.now().Sub(m.lastSlide) >= sliderSettle {
		m.a.endDrag()
	}
}

func (m *genpassUI) editInputHandler(inputKey string) {
	switch inputKey {
	case "<escape>":
		m.editing = false
	case "<enter>":
		m.editing = false
		m.a.chars = m.editText
		m.regenerate(false)
	case "C-8", "<backspace>":
		if m.editText != "" {
			_, size := utf8.DecodeLastRuneInString(m.editText)
			m.editText = m.editText[:len(m.editText)-size]
		}
	case "<space>":
		m.editText += " "
	default:
		if utf8.RuneCountInString(inputKey) == 1 {
			m.editText += inputKey
		}
	}
}

func (m *genpassUI) inputHandler(inputKey string) {
	switch inputKey {
	case "<left>", "h":
		m.slide(-1)
		return
	case "<right>", "l":
		m.slide(1)
		return
	}

	// any other key ends a drag
	m.a.endDrag()

	if c, ok := classKeys[inputKey]; ok {
		if m.a.classes.Has(c) {
			m.a.classes = m.a.classes.Without(c)
		} else {
			m.a.classes = m.a.classes.With(c)
		}
		m.regenerate(false)
		return
	}

	switch inputKey {
	case "g", "<enter>":
		m.regenerate(false)
	case "c":
		if m.a.password == "" {
			return
		}
		if err := secureclip.Clip(m.a.password); err != nil {
			m.notify(secureclip.ErrClipboard.Error())
			return
		}
		m.notify(fmt.Sprintf("Copied to clipboard, clearing in %v", secureclip.Timeout()))
	case "e":
		m.editing = true
		m.editText = m.a.chars
	case "q", "C-c":
		m.stop()
	}
}

func (m *genpassUI) handleKey(inputKey string) {
	if m.editing {
		m.editInputHandler(inputKey)
	} else {
		m.inputHandler(inputKey)
	}
	m.refresh()
}

func (m *genpassUI) render() {
	ui.Clear()
	ui.Render(ui.Body)
	if m.displayFlash {
		m.displayFlash = false
		ui.Render(m.flash)
	}
}

func (m *genpassUI) run() error {
	ui.Body.AddRows(
		ui.NewRow(ui.NewCol(12, 0, m.output)),
		ui.NewRow(
			ui.NewCol(6, 0, m.classes),
			ui.NewCol(6, 0, m.slider),
		),
		ui.NewRow(ui.NewCol(12, 0, m.chars)),
		ui.NewRow(ui.NewCol(12, 0, m.help)),
	)

	ui.Handle("/sys/kbd", func(e ui.Event) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.handleKey(e.Data.(ui.EvtKbd).KeyStr)
		m.render()
	})
	ui.Handle("/timer/1s", func(ui.Event) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.tick()
	})
	ui.Handle("/sys/wnd/resize", func(ui.Event) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if ui.TermWidth() > 20 {
			ui.Body.Width = ui.TermWidth()
		}
		ui.Body.Align()
		m.render()
	})

	ui.Body.Align()
	m.render()
	ui.Loop()
	return nil
}

func runUI(a *app) error {
	if err := ui.Init(); err != nil {
		return err
	}
	defer ui.Close()

	defer func() {
		a.endDrag()
		secureclip.Clear()
	}()

	m := newGenpassUI(a)
	m.regenerate(false)
	m.refresh()
	return m.run()
}
