package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fortbuild/fortbuild/internal/document"
	"github.com/fortbuild/fortbuild/internal/manifest"
)

func main() {
	// Define subcommands
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	checkManifest := checkCmd.String("manifest", "fortbuild.toml", "Path to the project manifest")

	describeCmd := flag.NewFlagSet("describe", flag.ExitOnError)
	describeManifest := describeCmd.String("manifest", "fortbuild.toml", "Path to the project manifest")
	describeVerbose := describeCmd.Bool("verbose", false, "Enable verbose output")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportManifest := exportCmd.String("manifest", "fortbuild.toml", "Path to the project manifest")

	if len(os.Args) < 2 {
		fmt.Println("Usage: fortbuild [command]")
		fmt.Println("Commands:")
		fmt.Println("  check      Validate the project manifest")
		fmt.Println("  describe   Print the parsed manifest")
		fmt.Println("  export     Re-serialize the manifest in normalized form")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		checkCmd.Parse(os.Args[2:])
		handleCheck(*checkManifest)

	case "describe":
		describeCmd.Parse(os.Args[2:])
		handleDescribe(*describeManifest, *describeVerbose)

	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(*exportManifest)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func handleCheck(path string) {
	m, err := manifest.LoadFromFile(path)
	if err != nil {
		log.Fatalf("Manifest check failed: %v", err)
	}

	fmt.Printf("Manifest OK: package %s\n", m.Package.Name)
	fmt.Printf("Preprocessors defined: %d\n", len(m.Preprocessors))
	for _, p := range m.Preprocessors {
		fmt.Printf("  - %s (suffixes: %d, directories: %d, macros: %d)\n",
			p.Name, len(p.Suffixes), len(p.Directories), len(p.Macros))
	}
}

func handleDescribe(path string, verbose bool) {
	m, err := manifest.LoadFromFile(path)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	verbosity := 1
	if verbose {
		verbosity = 2
	}
	fmt.Print(m.Describe(verbosity))
}

func handleExport(path string) {
	m, err := manifest.LoadFromFile(path)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	root := document.NewTable()

	pkg := document.NewTable()
	pkg.SetString("name", m.Package.Name)
	if m.Package.Version != "" {
		pkg.SetString("version", m.Package.Version)
	}
	root.Set("package", pkg)

	if len(m.Preprocessors) > 0 {
		section := document.NewTable()
		for i := range m.Preprocessors {
			entry := document.NewTable()
			if err := m.Preprocessors[i].Dump(entry); err != nil {
				log.Fatalf("Failed to export preprocessor '%s': %v", m.Preprocessors[i].Name, err)
			}
			// The entry key already carries the name
			entry.Delete("name")
			section.Set(m.Preprocessors[i].Name, entry)
		}
		root.Set("preprocess", section)
	}

	data, err := document.Marshal(root)
	if err != nil {
		log.Fatalf("Failed to serialize manifest: %v", err)
	}
	os.Stdout.Write(data)
}
