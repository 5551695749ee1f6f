// fbxdump decodes a binary FBX file and prints its node tree. It is a
// thin wrapper around the fbx package for inspecting files; extracting
// geometry or animation is up to dedicated tools.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v2"

	"github.com/haxelion/fbx3d/fbx"
)

var (
	format = flag.String("format", "text", "output format: text, yaml or spew")
	full   = flag.Bool("full", false, "print long arrays instead of eliding them")
)

func nodeToYAML(n *fbx.Node) yaml.MapSlice {
	m := yaml.MapSlice{{Key: "name", Value: n.Name}}
	if len(n.Properties) > 0 {
		values := make([]interface{}, len(n.Properties))
		for i, p := range n.Properties {
			values[i] = p.Value
		}
		m = append(m, yaml.MapItem{Key: "properties", Value: values})
	}
	if len(n.Children) > 0 {
		children := make([]yaml.MapSlice, len(n.Children))
		for i, c := range n.Children {
			children[i] = nodeToYAML(c)
		}
		m = append(m, yaml.MapItem{Key: "children", Value: children})
	}
	return m
}

func dumpYAML(doc *fbx.Document) error {
	nodes := make([]yaml.MapSlice, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodes[i] = nodeToYAML(n)
	}
	out, err := yaml.Marshal(yaml.MapSlice{
		{Key: "version", Value: doc.Version},
		{Key: "nodes", Value: nodes},
	})
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: fbxdump [options] file.fbx")
		flag.PrintDefaults()
		os.Exit(2)
	}

	doc, err := fbx.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	switch *format {
	case "text":
		fmt.Printf("; FBX %d.%d document\n", doc.Version/1000, doc.Version%1000/100)
		doc.Dump(os.Stdout, *full)
	case "yaml":
		if err := dumpYAML(doc); err != nil {
			log.Fatal(err)
		}
	case "spew":
		cfg := spew.NewDefaultConfig()
		cfg.DisableCapacities = true
		cfg.Fdump(os.Stdout, doc)
	default:
		log.Fatalf("unknown format %q", *format)
	}
}
