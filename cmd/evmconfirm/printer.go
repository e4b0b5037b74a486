package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/logrusorgru/aurora"

	"evmconfirm/internal/storage"
	"evmconfirm/internal/txview"
)

// printer writes frames as aligned text.
// Without color, non-regular value types are spelled out after the value.
type printer struct {
	out   io.Writer
	au    aurora.Aurora
	color bool
}

func newPrinter(out io.Writer, color bool) *printer {
	return &printer{out: out, au: aurora.NewAurora(color), color: color}
}

func (p *printer) Print(frame storage.Frame) error {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "#%d\n", frame.Seq)
	if frame.Event != nil {
		p.printEvent(tw, frame.Event)
		return tw.Flush()
	}

	for i, section := range frame.Sections {
		if i > 0 {
			fmt.Fprintln(tw, "  --")
		}
		for _, item := range section.ViewItems {
			p.printItem(tw, item)
		}
	}
	if frame.ErrorText != "" {
		fmt.Fprintf(tw, "  error:\t%s\n", p.au.Red(frame.ErrorText))
	}
	state := p.au.Gray(12, "disabled")
	if frame.SendEnabled {
		state = p.au.Green("enabled")
	}
	fmt.Fprintf(tw, "  send:\t%s\n", state)

	return tw.Flush()
}

func (p *printer) printItem(w io.Writer, item txview.ViewItem) {
	switch it := item.(type) {
	case txview.Subhead:
		fmt.Fprintf(w, "  %s:\t%s\n", p.au.Bold(it.Title), it.Value)
	case txview.Value:
		if !p.color && it.Type != txview.ValueRegular {
			fmt.Fprintf(w, "    %s:\t%s\t(%s)\n", it.Title, it.Value, it.Type)
			return
		}
		fmt.Fprintf(w, "    %s:\t%s\n", it.Title, p.value(it))
	case txview.Address:
		if it.Value == it.ValueTitle {
			fmt.Fprintf(w, "    %s:\t%s\n", it.Title, it.Value)
			return
		}
		fmt.Fprintf(w, "    %s:\t%s\t%s\n", it.Title, it.Value, p.au.Gray(12, it.ValueTitle))
	case txview.Input:
		fmt.Fprintf(w, "    input:\t%s\n", it.Value)
	}
}

func (p *printer) value(v txview.Value) aurora.Value {
	switch v.Type {
	case txview.ValueOutgoing:
		return p.au.Red(v.Value)
	case txview.ValueIncoming:
		return p.au.Green(v.Value)
	case txview.ValueDisabled:
		return p.au.Gray(12, v.Value)
	default:
		return p.au.Reset(v.Value)
	}
}

func (p *printer) printEvent(w io.Writer, e *storage.Event) {
	var kind aurora.Value
	switch e.Kind {
	case "success":
		kind = p.au.Green(e.Kind)
	case "failed":
		kind = p.au.Red(e.Kind)
	default:
		kind = p.au.Yellow(e.Kind)
	}

	switch {
	case e.Hash != "":
		fmt.Fprintf(w, "  %s:\t%s\n", kind, e.Hash)
	case e.Message != "":
		fmt.Fprintf(w, "  %s:\t%s\n", kind, e.Message)
	default:
		fmt.Fprintf(w, "  %s\n", kind)
	}
}
