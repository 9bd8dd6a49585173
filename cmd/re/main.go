// Command re is a thin CLI wrapper over the root regex package: print
// whether <pattern> matches anywhere in <string>.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	regex "github.com/go-regex/core"
)

func main() {
	useDFA := flag.Bool("dfa", false, "match using the lazy DFA overlay instead of the NFA")
	verbose := flag.Bool("v", false, "enable debug logging of internal engine tracing")
	flag.Parse()

	if *verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}

	args := flag.Args()
	if len(args) != 2 {
		fmt.Println("Usage: re <pattern> <string>")
		return
	}

	pattern, haystack := args[0], args[1]

	r, err := regex.Parse(pattern)
	if err != nil {
		gologger.Error().Msgf("parse failed: %s", err)
		fmt.Println(err)
		os.Exit(1)
	}

	var matched bool
	if *useDFA {
		matched = r.WalkDFA(haystack)
	} else {
		matched = r.Walk(haystack)
	}

	fmt.Println(matched)
}
