package main

import (
	"fmt"
	"os"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "detect":
		err = runDetect(args)
	case "normalize":
		err = runNormalize(args)
	case "conflicts":
		err = runConflicts(args)
	case "serve":
		err = runServe(args)
	case "watch":
		err = runWatch(args)
	case "version":
		fmt.Printf("tokenspec %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: tokenspec <command> [flags] [paths...]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  detect     Detect the dominant naming pattern in token documents")
	fmt.Println("  normalize  Normalize tokens and resolve conflicts, print the result")
	fmt.Println("  conflicts  Report conflicts without resolving them")
	fmt.Println("  serve      Start the MCP server on stdio")
	fmt.Println("  watch      Re-run normalization when token documents change")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Paths may be token document files or directories to search.")
}
