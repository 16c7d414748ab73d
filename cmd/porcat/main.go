// Command porcat reads a POR data matrix from stdin and prints its cells
// to stdout. It takes no file arguments.
// It is ambient CLI wiring around the codec in internal/por, not part of
// the codec engine itself (spec §1 places file-level record layout and
// CLI harnesses out of scope for the core).
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/spssio/por/internal/por"
)

type dumpVisitor struct {
	x, xdim int
}

func (d *dumpVisitor) BeginMatrix() {}
func (d *dumpVisitor) BeginRow()    { fmt.Print("(") }
func (d *dumpVisitor) Numeric(v float64) {
	fmt.Printf("%v", v)
	d.sep()
}
func (d *dumpVisitor) Sysmiss(_ []byte) {
	fmt.Print("SYSMISS")
	d.sep()
}
func (d *dumpVisitor) String(s []byte) {
	fmt.Printf("%q", string(s))
	d.sep()
}
func (d *dumpVisitor) EndRow()    { fmt.Println(")") }
func (d *dumpVisitor) EndMatrix() {}

func (d *dumpVisitor) sep() {
	d.x++
	if d.x < d.xdim {
		fmt.Print(", ")
	} else {
		d.x = 0
	}
}

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "YAML config file (defaults to the POR format's own defaults)")
		base       = pflag.IntP("base", "b", 0, "override numeric radix base")
		lineLength = pflag.IntP("line-length", "l", 0, "override line length")
		columns    = pflag.StringP("columns", "t", "", "comma-separated column types, e.g. n,n,s,n")
		verbose    = pflag.BoolP("verbose", "v", false, "enable debug logging")
		dumpBytes  = pflag.IntP("dump-bytes", "d", 0, "hex-dump the first N input bytes to the log before parsing")
	)
	pflag.Parse()

	por.SetVerbose(*verbose)

	var input io.Reader = os.Stdin
	if *dumpBytes > 0 {
		head := make([]byte, *dumpBytes)
		n, _ := io.ReadFull(os.Stdin, head)
		por.Logger.Debug("input header\n" + por.HexDump(head[:n]))
		input = io.MultiReader(bytes.NewReader(head[:n]), os.Stdin)
	}

	cfg := por.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			por.Logger.Fatal("reading config", "err", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			por.Logger.Fatal("parsing config", "err", err)
		}
	}
	if *base != 0 {
		cfg.Base = *base
	}
	if *lineLength != 0 {
		cfg.LineLength = *lineLength
	}

	types := parseColumnTypes(*columns)
	if len(types) == 0 {
		por.Logger.Fatal("no column types given; pass --columns n,n,s")
	}

	visitor := &dumpVisitor{xdim: len(types)}

	rd, err := por.NewReader(input, cfg, nil, types, visitor)
	if err != nil {
		por.Logger.Fatal("building reader", "err", err)
	}
	if perr := rd.Run(); perr != nil {
		por.Logger.Fatal("reading matrix", "err", perr)
	}
}

func parseColumnTypes(spec string) []por.ColumnType {
	var out []por.ColumnType
	cur := ""
	flush := func() {
		switch cur {
		case "n", "N":
			out = append(out, por.ColumnNumeric)
		case "s", "S":
			out = append(out, por.ColumnString)
		}
		cur = ""
	}
	for _, c := range spec {
		if c == ',' {
			flush()
			continue
		}
		cur += string(c)
	}
	flush()
	return out
}
