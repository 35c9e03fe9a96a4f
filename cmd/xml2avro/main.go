package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	xmlavro "github.com/retailpipe/xmlavro"
	"github.com/retailpipe/xmlavro/container"
	"github.com/retailpipe/xmlavro/encode"
	"github.com/retailpipe/xmlavro/schema"
	"github.com/retailpipe/xmlavro/tree"
	"github.com/retailpipe/xmlavro/xmlsource"
)

func main() {
	xmlPath := flag.String("xml", "", "input XML document")
	schemaPath := flag.String("schema", "", "Avro schema (.avsc JSON, or YAML with a .yaml/.yml extension)")
	outPath := flag.String("out", "", "output Avro object container file")
	printJSON := flag.Bool("print", false, "print the encoded value graph as JSON on stdout")
	flag.Parse()

	level := getEnv("XMLAVRO_LOG", "info")
	if err := setupLogging(level); err != nil {
		slog.Error("could not init logging", "err", err)
		os.Exit(1)
	}

	if *xmlPath == "" || *schemaPath == "" {
		slog.Error("both -xml and -schema are required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*xmlPath, *schemaPath, *outPath, *printJSON); err != nil {
		slog.Error("conversion failed", "err", err)
		os.Exit(1)
	}
}

func run(xmlPath, schemaPath, outPath string, printJSON bool) error {
	rawXML, err := os.ReadFile(xmlPath)
	if err != nil {
		return err
	}
	rawSchema, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}

	elem, err := xmlsource.DecodeBytes(rawXML)
	if err != nil {
		return err
	}
	root := tree.Build(elem)
	slog.Debug("document tree built", "dump", root.Dump())

	sc, err := parseSchema(schemaPath, rawSchema)
	if err != nil {
		return err
	}

	diag := &xmlavro.Diag{}
	rec, err := encode.Record(root, sc, diag)
	if err != nil {
		return err
	}
	for _, it := range diag.Issues() {
		slog.Warn("conversion issue", "code", it.Code, "path", it.Path, "msg", it.Message)
	}

	if outPath != "" {
		// the container writer needs the schema as JSON; YAML-authored
		// schemas cannot be framed directly
		if isYAML(schemaPath) {
			return fmt.Errorf("-out requires a JSON (.avsc) schema, got %s", schemaPath)
		}
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := container.Write(f, rawSchema, rec); err != nil {
			return err
		}
		slog.Info("wrote container", "path", outPath)
	}

	if printJSON || outPath == "" {
		b, err := rec.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	}
	return nil
}

func parseSchema(path string, raw []byte) (*schema.Schema, error) {
	if isYAML(path) {
		return schema.ParseYAML(raw)
	}
	return schema.Parse(raw)
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}

func setupLogging(level string) error {
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(level))
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
	return err
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
