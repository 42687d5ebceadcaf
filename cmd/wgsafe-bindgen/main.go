// Command wgsafe-bindgen writes the C header of the native layer.
//
// Usage:
//
//	wgsafe-bindgen [-pkg github.com/gogpu/wgsafe/native] [-o wgpu.h] [-guard WGPU_H]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gogpu/wgsafe/bindgen"
)

func main() {
	var (
		pkg    = flag.String("pkg", "github.com/gogpu/wgsafe/native", "package to derive the header from")
		output = flag.String("o", "", "output file (default stdout)")
		guard  = flag.String("guard", "", "include guard macro (default WGPU_H)")
		prefix = flag.String("prefix", "", "type name prefix (default WGPU)")
	)
	flag.Parse()

	header, err := bindgen.Generate(bindgen.Config{Prefix: *prefix, Guard: *guard}, *pkg)
	if err != nil {
		log.Fatalf("bindgen: %v", err)
	}

	if *output == "" {
		if _, err := os.Stdout.Write(header); err != nil {
			log.Fatalf("write: %v", err)
		}
		return
	}
	if err := os.WriteFile(*output, header, 0o644); err != nil {
		log.Fatalf("write %s: %v", *output, err)
	}
	log.Printf("header written to %s (%d bytes)\n", *output, len(header))
}
