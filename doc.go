package xmlavro

// Package xmlavro converts self-describing XML documents into value graphs
// that conform to an externally supplied Avro schema, ready for binary
// encoding.
//
// The pipeline:
//
//	xmlsource.Decode -> tree.Build -> encode.Record(schema) -> container.Write
//
// Design policy:
// - Keep only the shared kernel (error model, diagnostics) in the root package.
// - Place the document tree under tree/, the schema model under schema/, the
//   encoder under encode/, scalar codecs under codec/, and the CLI under
//   cmd/xml2avro.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	elem, err := xmlsource.Decode(r)
//	root := tree.Build(elem)
//	sc, err := schema.Parse(avsc)
//	diag := &xmlavro.Diag{}
//	rec, err := encode.Record(root, sc, diag)
