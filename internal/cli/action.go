package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/fbettag/alfred-openrouter/internal/config"
)

// newActionCmd handles the arg Alfred passes back when an item is actioned:
// copy requests, curl command generation, and URL opening. Whatever it
// prints becomes the notification text.
func newActionCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "action [arg]",
		Short:  "Execute an item action (copy, curl, open URL)",
		Args:   cobra.ArbitraryArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, strings.Join(args, " "))
		},
	}
}

func runAction(cmd *cobra.Command, arg string) error {
	switch {
	case strings.HasPrefix(arg, "COPY:"):
		content := strings.TrimPrefix(arg, "COPY:")
		if err := clipboard.WriteAll(content); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		cmd.Println(content)

	case strings.HasPrefix(arg, "CURL:"):
		modelID := strings.TrimPrefix(arg, "CURL:")
		if err := clipboard.WriteAll(buildCurlCommand(modelID, "")); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		cmd.Printf("curl command for %s\n", modelID)

	case strings.HasPrefix(arg, "CURL_PROVIDER:"):
		// Format: CURL_PROVIDER:{model_id}|{provider_name}
		rest := strings.TrimPrefix(arg, "CURL_PROVIDER:")
		modelID, provider, _ := strings.Cut(rest, "|")
		if err := clipboard.WriteAll(buildCurlCommand(modelID, provider)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		cmd.Printf("curl command for %s (%s)\n", modelID, provider)

	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		if err := open.Start(arg); err != nil {
			return fmt.Errorf("opening %s: %w", arg, err)
		}

	default:
		if err := clipboard.WriteAll(arg); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		cmd.Println(arg)
	}
	return nil
}

// buildCurlCommand renders a ready-to-paste chat completion request,
// optionally pinned to a single provider.
func buildCurlCommand(modelID, provider string) string {
	providerBlock := ""
	if provider != "" {
		providerBlock = fmt.Sprintf(`
  "provider": {
    "order": ["%s"],
    "allow_fallbacks": false
  },`, provider)
	}

	return fmt.Sprintf(`curl %s \
  -H "Authorization: Bearer $OPENROUTER_API_KEY" \
  -H "Content-Type: application/json" \
  -d '{
  "model": "%s",%s
  "messages": [
    {"role": "user", "content": "Hello"}
  ]
}'`, config.ChatURL, modelID, providerBlock)
}
