package main

import (
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/contextbridge/bridge/internal/bridge"
	"github.com/contextbridge/bridge/internal/cloud"
	"github.com/contextbridge/bridge/internal/platform"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "bridgectl",
	Short: "Carry AI chat conversations between platforms",
	Long: `bridgectl extracts conversations from saved AI chat pages (ChatGPT,
Claude, Gemini, Poe), compacts them, and republishes them either by
injecting into another page's input field or through the context store.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server",
		envOr("BRIDGE_SERVER", "http://localhost:8600"), "context store base URL")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newService() *bridge.Service {
	return bridge.New(cloud.NewClient(serverURL))
}

func newCloudClient() *cloud.Client {
	return cloud.NewClient(serverURL)
}

// canonical origin per platform, for runs that pass --platform instead of
// the page URL.
var platformOrigins = map[string]string{
	"chatgpt": "https://chatgpt.com",
	"claude":  "https://claude.ai",
	"gemini":  "https://gemini.google.com",
	"poe":     "https://poe.com",
}

// resolveOrigin turns the --origin/--platform pair into a single origin
// string. Exactly one of the two must be set.
func resolveOrigin(origin, platformName string) (string, error) {
	switch {
	case origin != "" && platformName != "":
		return "", fmt.Errorf("use either --origin or --platform, not both")
	case origin != "":
		return origin, nil
	case platformName != "":
		o, ok := platformOrigins[platformName]
		if !ok {
			return "", fmt.Errorf("unknown platform %q (want chatgpt, claude, gemini or poe)", platformName)
		}
		return o, nil
	default:
		return "", fmt.Errorf("either --origin or --platform is required")
	}
}

func parsePlatform(name string) (platform.Platform, error) {
	p := platform.Platform(name)
	if !platform.Known(p) {
		return platform.Unknown, fmt.Errorf("unknown platform %q (want chatgpt, claude, gemini or poe)", name)
	}
	return p, nil
}

func loadDoc(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}
