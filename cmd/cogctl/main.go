// cogctl runs the analysis engine against a COG analysis JSON document:
// rank vulnerabilities, derive the network, compute centrality, and export
// CSV or Markdown without a running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/irregularchat/irregular-researchtools-sub006/pkg/cog"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/engine"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/export"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/logging"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/ranking"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/scoring"
	"github.com/irregularchat/irregular-researchtools-sub006/pkg/templates"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: cogctl <command> [flags]

Commands:
  rank        Print the prioritized vulnerability list
  edges       Print the derived edge list
  centrality  Print top nodes by degree centrality
  export      Write rankings/edges CSV or a Markdown report
  templates   List built-in starter templates
  new         Instantiate a template to a JSON document

Run 'cogctl <command> -h' for command flags.
`)
	os.Exit(2)
}

func loadAnalysis(path string) (*cog.COGAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis: %w", err)
	}
	var a cog.COGAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	if err := cog.Validate(&a); err != nil {
		return nil, fmt.Errorf("invalid analysis document: %w", err)
	}
	return &a, nil
}

func newEngine() *engine.Engine {
	return engine.New(logging.NopLogger{}, nil)
}

func cmdRank(args []string) error {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	file := fs.String("f", "", "Analysis JSON file (required)")
	tiebreak := fs.String("tiebreak", "impact", "Tie-break rule: impact or input_order")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("rank: -f is required")
	}

	a, err := loadAnalysis(*file)
	if err != nil {
		return err
	}

	var opts []ranking.Option
	switch *tiebreak {
	case "impact":
	case "input_order":
		opts = append(opts, ranking.WithTieBreak(ranking.TieBreakInputOrder))
	default:
		return fmt.Errorf("rank: unknown tiebreak %q", *tiebreak)
	}

	ranked, err := newEngine().Rank(a, opts...)
	if err != nil {
		return err
	}

	ceiling, err := scoring.MaxComposite(a.ScoringSystem)
	if err != nil {
		return err
	}

	fmt.Printf("%-5s %-9s %-10s %-50s %s\n", "Rank", "Score", "Severity", "Vulnerability", "Impact/Attain/Follow-up")
	for _, rv := range ranked {
		v := rv.Vulnerability
		fmt.Printf("%-5d %2d/%-6d %-10s %-50s %d/%d/%d\n",
			rv.PriorityRank, rv.CompositeScore, ceiling, rv.Severity,
			truncate(v.Vulnerability, 50),
			v.Scoring.ImpactOnCOG, v.Scoring.Attainability, v.Scoring.FollowUpPotential)
	}
	return nil
}

func cmdEdges(args []string) error {
	fs := flag.NewFlagSet("edges", flag.ExitOnError)
	file := fs.String("f", "", "Analysis JSON file (required)")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("edges: -f is required")
	}

	a, err := loadAnalysis(*file)
	if err != nil {
		return err
	}

	result := newEngine().BuildGraph(a, 0)
	return export.WriteEdgesCSV(os.Stdout, result.Edges)
}

func cmdCentrality(args []string) error {
	fs := flag.NewFlagSet("centrality", flag.ExitOnError)
	file := fs.String("f", "", "Analysis JSON file (required)")
	top := fs.Int("top", 10, "Number of top nodes to show")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("centrality: -f is required")
	}

	a, err := loadAnalysis(*file)
	if err != nil {
		return err
	}

	result := newEngine().BuildGraph(a, *top)
	fmt.Printf("Nodes: %d  Edges: %d  Orphans excluded: %d\n\n",
		result.Stats.NodeCount, result.Stats.EdgeCount, result.Orphans)
	fmt.Printf("%-5s %-40s %s\n", "Rank", "Node", "Degree")
	for _, n := range result.TopNodes {
		fmt.Printf("%-5d %-40s %d\n", n.Rank, n.NodeID, n.Degree)
	}
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	file := fs.String("f", "", "Analysis JSON file (required)")
	format := fs.String("format", "rankings", "Export format: rankings, edges, or report")
	out := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("export: -f is required")
	}

	a, err := loadAnalysis(*file)
	if err != nil {
		return err
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	eng := newEngine()
	switch *format {
	case "rankings":
		ranked, err := eng.Rank(a)
		if err != nil {
			return err
		}
		return export.WriteRankingsCSV(w, ranked)
	case "edges":
		return export.WriteEdgesCSV(w, eng.BuildGraph(a, 0).Edges)
	case "report":
		ranked, err := eng.Rank(a)
		if err != nil {
			return err
		}
		return export.WriteMarkdownReport(w, a, ranked, eng.BuildGraph(a, 0).Edges)
	default:
		return fmt.Errorf("export: unknown format %q", *format)
	}
}

func cmdTemplates(args []string) error {
	for _, t := range templates.List() {
		fmt.Printf("%-22s %s\n", t.Name, t.Description)
	}
	return nil
}

func cmdNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	name := fs.String("template", "blank", "Template name")
	out := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	a, err := templates.Instantiate(*name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(*out, data, 0o644)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	commands := map[string]func([]string) error{
		"rank":       cmdRank,
		"edges":      cmdEdges,
		"centrality": cmdCentrality,
		"export":     cmdExport,
		"templates":  cmdTemplates,
		"new":        cmdNew,
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage()
	}
	if err := cmd(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "cogctl: %v\n", err)
		os.Exit(1)
	}
}
