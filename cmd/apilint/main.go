// Command apilint checks Java API dumps for style and compatibility problems
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
