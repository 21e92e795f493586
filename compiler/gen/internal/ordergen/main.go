// ordergen is a codegen cmd for generating the precedence tiers of a
// target language from its order.yaml.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"
	"gopkg.in/yaml.v3"
)

const genPkg = "github.com/syssam/blockgen/compiler/gen"

// Table is the contents of an order.yaml file.
type Table struct {
	Package  string `yaml:"package"`
	Language string `yaml:"language"`
	Tiers    []Tier `yaml:"tiers"`
}

// Tier is one precedence tier. Tiers sharing a value are aliases.
type Tier struct {
	Name  string `yaml:"name"`
	Value int    `yaml:"value"`
}

func main() {
	in := flag.String("in", "order.yaml", "order table to read")
	out := flag.String("out", "order_gen.go", "go file to write")
	flag.Parse()

	buf, err := os.ReadFile(*in)
	if err != nil {
		log.Fatal("reading order table:", err)
	}
	t, err := parse(buf)
	if err != nil {
		log.Fatal("parsing order table:", err)
	}
	if buf, err = render(t, *out); err != nil {
		log.Fatal("rendering tiers:", err)
	}
	if err = os.WriteFile(*out, buf, 0o644); err != nil {
		log.Fatal("writing go file:", err)
	}
}

func parse(buf []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(buf, &t); err != nil {
		return nil, err
	}
	if t.Package == "" {
		return nil, errors.New("missing package")
	}
	if len(t.Tiers) == 0 {
		return nil, errors.New("no tiers")
	}
	seen := make(map[string]bool)
	for _, tier := range t.Tiers {
		switch {
		case tier.Name == "":
			return nil, errors.New("tier without name")
		case seen[tier.Name]:
			return nil, fmt.Errorf("duplicate tier %q", tier.Name)
		case tier.Value < 0 || tier.Value > 99:
			return nil, fmt.Errorf("tier %q: value %d out of range [0, 99]", tier.Name, tier.Value)
		}
		seen[tier.Name] = true
	}
	return &t, nil
}

// ident converts a snake_case tier name to its Go constant name.
func ident(name string) string {
	title := cases.Title(language.English)
	var b strings.Builder
	b.WriteString("Order")
	for _, part := range strings.Split(name, "_") {
		b.WriteString(title.String(part))
	}
	return b.String()
}

func render(t *Table, filename string) ([]byte, error) {
	f := jen.NewFile(t.Package)
	f.HeaderComment("Code generated by ordergen. DO NOT EDIT.")

	lang := t.Language
	if lang == "" {
		lang = t.Package
	}
	f.Comment(fmt.Sprintf("Precedence tiers of %s operators. Lower values bind tighter.", lang))
	f.Const().DefsFunc(func(g *jen.Group) {
		for _, tier := range t.Tiers {
			g.Id(ident(tier.Name)).Qual(genPkg, "Order").Op("=").Lit(tier.Value)
		}
	})

	named := make(map[int]bool)
	f.Var().Id("orderNames").Op("=").Map(jen.Qual(genPkg, "Order")).String().Values(jen.DictFunc(func(d jen.Dict) {
		for _, tier := range t.Tiers {
			if named[tier.Value] {
				continue
			}
			named[tier.Value] = true
			d[jen.Id(ident(tier.Name))] = jen.Lit(tier.Name)
		}
	}))

	f.Comment("OrderName returns the name of the tier o, or \"\" if o is not a tier.")
	f.Func().Id("OrderName").Params(jen.Id("o").Qual(genPkg, "Order")).String().Block(
		jen.Return(jen.Id("orderNames").Index(jen.Id("o"))),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return imports.Process(filename, buf.Bytes(), nil)
}
