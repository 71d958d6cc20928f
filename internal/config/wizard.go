package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .schoolpos.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to school-pos! Let's configure your canteen.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(defaults.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p <= 0 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port selection: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the database",
		Default: defaults.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Static assets directory.
	staticPrompt := promptui.Prompt{
		Label:   "Static assets directory (leave blank for none)",
		Default: defaults.StaticDir,
	}
	staticDir, err := staticPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}

	// 4. CORS mode.
	corsPrompt := promptui.Select{
		Label: "Allowed origins",
		Items: []string{
			"localhost only (recommended)",
			"any origin (dev mode)",
		},
	}
	corsIdx, _, err := corsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cors selection: %w", err)
	}

	cfg := &Config{
		Port:         port,
		DataDir:      dataDir,
		StaticDir:    staticDir,
		ServerURL:    fmt.Sprintf("http://localhost:%d", port),
		AllowAllCORS: corsIdx == 1,
		CacheAssets:  DefaultCacheAssets,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Save to .schoolpos.yml.
	configPath := ".schoolpos.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
