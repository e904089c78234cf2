// Command sql2awk translates a SQL query into an awk program on stdout.
//
//	sql2awk -schema "src:str,dst:str,bytes:int,dur:real" "SELECT src, count(DISTINCT dst)"
//	sql2awk -schema-file flows.yaml -gawk "SELECT src WHERE src LIKE '10.%'" | gawk -f - < flows.tsv
//
// The schema names the input columns in stream order. This command only
// emits the program; feeding it to an awk interpreter is the caller's job.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"

	"github.com/freeeve/sql2awk"
	"github.com/freeeve/sql2awk/dialect"
	"github.com/freeeve/sql2awk/schema"
)

var log = logrus.New()

func main() {
	schemaFlag := flag.String("schema", "", "inline schema: name:type[,name:type...] with type int, real or str")
	schemaFile := flag.String("schema-file", "", "YAML schema file (columns: [{name, type}, ...])")
	gawk := flag.Bool("gawk", false, "accept gawk-only functions")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	query := strings.Join(flag.Args(), " ")
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: sql2awk -schema name:type[,...] [-gawk] \"QUERY\"")
		flag.PrintDefaults()
		os.Exit(2)
	}

	s, err := loadSchema(*schemaFlag, *schemaFile)
	if err != nil {
		log.WithError(err).Fatal("invalid schema")
	}

	d := dialect.Portable
	if *gawk {
		d = dialect.Gawk
	}

	prog, err := sql2awk.Translate(query, s, d)
	if err != nil {
		log.WithError(err).Fatal("translation failed")
	}
	log.WithFields(logrus.Fields{
		"dialect": d.String(),
		"columns": prog.Output.Len(),
	}).Debug("translated query")

	fmt.Print(prog.Text)
}

// schemaDoc is the YAML schema file shape.
type schemaDoc struct {
	Columns []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"columns"`
}

func loadSchema(inline, file string) (*schema.Schema, error) {
	switch {
	case inline != "" && file != "":
		return nil, fmt.Errorf("-schema and -schema-file are mutually exclusive")
	case inline != "":
		return parseInline(inline)
	case file != "":
		return parseFile(file)
	}
	return nil, fmt.Errorf("a schema is required (-schema or -schema-file)")
}

func parseInline(s string) (*schema.Schema, error) {
	var cols []schema.Column
	for _, field := range strings.Split(s, ",") {
		name, typeName, ok := strings.Cut(strings.TrimSpace(field), ":")
		if !ok {
			return nil, fmt.Errorf("bad schema field %q, want name:type", field)
		}
		t, err := schema.ParseType(typeName)
		if err != nil {
			return nil, err
		}
		cols = append(cols, schema.Column{Name: name, Type: t})
	}
	return schema.New(cols...)
}

func parseFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	cols := make([]schema.Column, 0, len(doc.Columns))
	for _, c := range doc.Columns {
		t, err := schema.ParseType(c.Type)
		if err != nil {
			return nil, err
		}
		cols = append(cols, schema.Column{Name: c.Name, Type: t})
	}
	return schema.New(cols...)
}
