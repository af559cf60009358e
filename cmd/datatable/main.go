// Package main implements the datatable binary
// rendering table definition files as HTML.
package main

import "github.com/domonda/go-datatable/internal/cli"

func main() {
	cli.DoCLI()
}
