//go:build ignore

// build.go - Store Pulse Build System
// Usage: go run build.go [-target=TARGET]
// Targets: all, dashboard, storectl, clean, test, release

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const module = "storepulse"

// BuildContext holds configuration for the build process
type BuildContext struct {
	Verbose bool
	Release bool
}

var (
	distDir = "dist"

	// Executable names (key = cmd directory, value = output binary)
	executables = map[string]string{
		"dashboard": "storepulse",
		"storectl":  "storectl",
	}

	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

func main() {
	target := flag.String("target", "all", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	printHeader()
	startTime := time.Now()

	buildCtx := &BuildContext{Verbose: *verbose}

	switch *target {
	case "all":
		buildAll(buildCtx)
	case "dashboard", "storectl":
		buildExecutable(*target, buildCtx)
	case "clean":
		clean(buildCtx.Verbose)
	case "test":
		runTests(buildCtx.Verbose)
	case "release":
		buildCtx.Release = true
		buildAll(buildCtx)
	default:
		showHelp()
		os.Exit(1)
	}

	duration := time.Since(startTime)
	printSuccess(fmt.Sprintf("Build completed in %s", duration.Round(time.Millisecond)))
}

func printHeader() {
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println(colorCyan + "       Store Pulse - Build System          " + colorReset)
	fmt.Println(colorCyan + "===========================================" + colorReset)
	fmt.Println()
}

func printInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", colorBlue, colorReset, msg)
}

func printSuccess(msg string) {
	fmt.Printf("%s[SUCCESS]%s %s\n", colorGreen, colorReset, msg)
}

func printError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", colorRed, colorReset, msg)
}

func printWarning(msg string) {
	fmt.Printf("%s[WARNING]%s %s\n", colorYellow, colorReset, msg)
}

// Build all components
func buildAll(ctx *BuildContext) {
	printInfo("Building all components...")

	if err := os.MkdirAll(distDir, 0755); err != nil {
		printError(fmt.Sprintf("Failed to create %s: %v", distDir, err))
		os.Exit(1)
	}

	for _, name := range []string{"dashboard", "storectl"} {
		buildExecutable(name, ctx)
	}
}

func buildExecutable(name string, ctx *BuildContext) {
	binName := executables[name]
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}

	printInfo(fmt.Sprintf("Building %s...", name))

	outputPath := filepath.Join(distDir, binName)
	ldflags := versionFlags()
	if ctx.Release {
		ldflags = "-s -w " + ldflags
	}

	args := []string{"build"}
	if ctx.Verbose {
		args = append(args, "-v")
	}
	if ctx.Release {
		args = append(args, "-trimpath")
	}
	args = append(args, "-ldflags", ldflags, "-o", outputPath, "./cmd/"+name)

	cmd := exec.Command("go", args...)
	if ctx.Verbose {
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Failed to build %s: %v", name, err))
		os.Exit(1)
	}

	if info, err := os.Stat(outputPath); err == nil {
		sizeMB := float64(info.Size()) / 1024 / 1024
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", binName, sizeMB))
	}
}

// versionFlags stamps the build metadata read by pkg/contracts
func versionFlags() string {
	pkg := module + "/pkg/contracts"
	flags := []string{
		fmt.Sprintf("-X %s.BuildTime=%s", pkg, time.Now().UTC().Format(time.RFC3339)),
	}
	if commit := gitOutput("rev-parse", "--short", "HEAD"); commit != "" {
		flags = append(flags, fmt.Sprintf("-X %s.GitCommit=%s", pkg, commit))
	}
	if branch := gitOutput("rev-parse", "--abbrev-ref", "HEAD"); branch != "" {
		flags = append(flags, fmt.Sprintf("-X %s.GitBranch=%s", pkg, branch))
	}
	return strings.Join(flags, " ")
}

func gitOutput(args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func clean(verbose bool) {
	printInfo("Cleaning build artifacts...")

	for _, dir := range []string{distDir, "exports"} {
		if verbose {
			printInfo(fmt.Sprintf("Removing %s", dir))
		}
		if err := os.RemoveAll(dir); err != nil {
			printWarning(fmt.Sprintf("Failed to remove %s: %v", dir, err))
		}
	}

	printSuccess("Build artifacts cleaned")
}

// Run tests
func runTests(verbose bool) {
	printInfo("Running Go tests...")

	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Go tests failed: %v", err))
		os.Exit(1)
	}

	printSuccess("All tests passed")
}

func showHelp() {
	fmt.Println("Usage: go run build.go [-target=TARGET] [-v]")
	fmt.Println()
	fmt.Println("Targets:")
	fmt.Println("  all         Build the server and the CLI (default)")
	fmt.Println("  dashboard   Build the dashboard server only")
	fmt.Println("  storectl    Build the command line tool only")
	fmt.Println("  clean       Remove build artifacts")
	fmt.Println("  test        Run all tests with the race detector")
	fmt.Println("  release     Build stripped binaries")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v          Verbose output")
}
