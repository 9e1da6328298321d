package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arenalab/arena-advisor/internal/advisor"
	"github.com/arenalab/arena-advisor/internal/roster"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyzeCommand(os.Args[2:])
	case "suggest":
		runSuggestCommand(os.Args[2:])
	case "counter":
		runCounterCommand(os.Args[2:])
	case "meta":
		runMetaCommand(os.Args[2:])
	case "ingest":
		runIngestCommand(os.Args[2:])
	case "report":
		runReportCommand(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Arena Advisor - team composition analysis")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  arena-advisor <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  analyze   Analyze a team composition")
	fmt.Println("  suggest   Suggest teammates for a partial team")
	fmt.Println("  counter   Recommend counter picks against an enemy team")
	fmt.Println("  meta      Generate top team compositions")
	fmt.Println("  ingest    Download the character dataset into the local cache")
	fmt.Println("  report    Render a team analysis to an HTML report")
	fmt.Println("  help      Show this help")
	fmt.Println()
	fmt.Println("Run 'arena-advisor <command> -h' for command flags.")
}

// parseIDs splits a comma-separated id list.
func parseIDs(raw string) []roster.ID {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]roster.ID, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, roster.ID(p))
		}
	}
	return ids
}

// memberNames resolves ids to display names, falling back to the id.
func memberNames(svc *advisor.Service, ids []roster.ID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if c := svc.Character(id); c != nil {
			names = append(names, c.Name)
		} else {
			names = append(names, string(id))
		}
	}
	return names
}
