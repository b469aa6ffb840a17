// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// pptdump prints the record tree of a presentation document stream as
// YAML, and can verify that the stream round-trips byte-identically.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slidelab/pptrec"
	"github.com/slidelab/pptrec/escher"
	"github.com/slidelab/pptrec/record"
)

var (
	strict  = flag.Bool("strict", false, "fail on malformed records instead of keeping them verbatim")
	verify  = flag.Bool("verify", false, "check that the stream serializes back to identical bytes")
	verbose = flag.Bool("v", false, "log recovered subtrees to stderr")
)

type node struct {
	Type     string `yaml:"type"`
	Version  uint8  `yaml:"version"`
	Instance uint16 `yaml:"instance,omitempty"`
	Length   int    `yaml:"length"`
	Opaque   bool   `yaml:"opaque,omitempty"`
	Props    []prop `yaml:"props,omitempty"`
	Children []node `yaml:"children,omitempty"`
}

type prop struct {
	ID      string `yaml:"id"`
	Value   uint32 `yaml:"value,omitempty"`
	BlobLen int    `yaml:"blobLen,omitempty"`
}

func toNode(r *record.Record) node {
	n := node{
		Type:     record.TypeName(r.Type),
		Version:  r.Version(),
		Instance: r.Instance(),
		Length:   r.PayloadSize(),
		Opaque:   r.IsOpaque(),
	}
	if r.Type == record.TypeOpt && !r.IsOpaque() {
		if bag, err := escher.DecodeBag(r.Data); err == nil {
			for _, p := range bag.Properties() {
				n.Props = append(n.Props, prop{
					ID:      fmt.Sprintf("0x%04X", uint16(p.ID)),
					Value:   p.Value,
					BlobLen: len(p.Blob),
				})
			}
		}
	}
	for _, c := range r.Children {
		n.Children = append(n.Children, toNode(c))
	}
	return n
}

func run() error {
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: pptdump [-strict] [-verify] [-v] <document-stream>")
	}
	path := flag.Arg(0)

	var opts []pptrec.Option
	if *strict {
		opts = append(opts, pptrec.WithStrict())
	}
	if *verbose {
		opts = append(opts, pptrec.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}

	doc, err := pptrec.OpenFile(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		_ = doc.Close()
	}()

	if *verify {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := pptrec.VerifyRoundTrip(data); err != nil {
			return fmt.Errorf("verify %s: %w", path, err)
		}
		fmt.Printf("%s: round-trip ok, fingerprint %016x\n", path, doc.Fingerprint())
		return nil
	}

	var nodes []node
	for _, r := range doc.Records() {
		nodes = append(nodes, toNode(r))
	}
	out, err := yaml.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("yaml.Marshal: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pptdump: %s\n", err)
		os.Exit(1)
	}
}
