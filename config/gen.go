//go:build ignore

// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/fatih/structtag"
)

type keydoc struct {
	Key  string
	Help string
}

var templ = `
package config

var docStrings = map[string]string{
{{- range . }}
	{{ .Key | printf "%q" }}: {{ .Help | printf "%q" }},
{{- end }}
}
`

func parseGoFile(f string, structName string) ([]keydoc, error) {
	docs := []keydoc{}

	d, err := parser.ParseFile(token.NewFileSet(), f, nil, parser.ParseComments)
	if err != nil {
		return docs, err
	}

	var inserr error

	ast.Inspect(d, func(n ast.Node) bool {
		if inserr != nil {
			return false
		}

		switch t := n.(type) {
		case *ast.TypeSpec:
			return t.Name.Name == structName

		case *ast.StructType:
			for _, field := range t.Fields.List {
				if field.Tag == nil || field.Tag.Kind != token.STRING {
					continue
				}

				tag := strings.Trim(field.Tag.Value, "`")
				doc := strings.Join(strings.Fields(field.Doc.Text()), " ")
				if !strings.Contains(tag, "confkey") || doc == "" {
					continue
				}

				tags, err := structtag.Parse(tag)
				if err != nil {
					inserr = err
					return false
				}

				key, err := tags.Get("confkey")
				if err != nil {
					inserr = err
					return false
				}

				docs = append(docs, keydoc{key.Value(), doc})
			}
		}

		return true
	})

	return docs, inserr
}

func main() {
	log.Println("Generating configuration doc strings")

	docs, err := parseGoFile(filepath.Join("config", "config.go"), "Config")
	if err != nil {
		panic(err)
	}

	if len(docs) == 0 {
		panic("no documentation strings were generated")
	}

	t, err := template.New("templates").Parse(templ)
	if err != nil {
		panic(err)
	}

	outfile := filepath.Join("config", "docstrings.go")
	out, err := os.Create(outfile)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(out, "// auto generated at %s\n\n", time.Now().Format(time.RFC3339))

	err = t.Execute(out, docs)
	out.Close()
	if err != nil {
		panic(err)
	}

	o, err := exec.Command("go", "fmt", outfile).CombinedOutput()
	if err != nil {
		log.Printf("go fmt failed: %s", string(o))
	}

	log.Printf("Generated %s", outfile)
}
