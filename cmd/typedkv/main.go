// Command typedkv inspects and edits a typedkv snapshot file.
//
//	typedkv set score Int 42
//	typedkv set tint Color 1,0,0,1
//	typedkv get tint
//	typedkv scan -o yaml
//	typedkv import values.yaml
//	typedkv delete score
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
