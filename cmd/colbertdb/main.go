// Command colbertdb manages collections on a ColBERT store and can run an
// in-memory development store.
package main

import (
	"os"

	"github.com/kailas-cloud/colbertdb/cmd/colbertdb/cli"
)

func main() {
	os.Exit(cli.Execute())
}
