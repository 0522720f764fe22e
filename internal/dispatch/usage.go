package dispatch

import (
	"fmt"
	"strings"
)

// Usage renders the help text for binName from the catalog.
func (d *Dispatcher) Usage(binName string) string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render("Usage:"))
	fmt.Fprintf(&b, "\n\t%s [options] <parameter>\n", binName)
	b.WriteString("\n")
	b.WriteString(d.styles.Title.Render("OPTIONS:"))
	b.WriteString("\n")

	for _, flag := range d.catalog.Flags() {
		names := flag.LongNames()
		if flag.Short != "" {
			names = append(names, flag.Short)
		}
		for i, name := range names {
			names[i] = d.styles.Accent.Render(name)
		}
		fmt.Fprintf(&b, "\t%s: \t %s\n", strings.Join(names, ", "), flag.Description)
	}

	return b.String()
}

func (d *Dispatcher) printUsage(binName string) error {
	_, err := fmt.Fprint(d.out, d.Usage(binName))
	return err
}
