package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/paperstack/paperstack/scripts/internal"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "add-user",
		Description: "Create a verified user with a password and business name",
		Run:         internal.AddVerifiedUser,
	},
	{
		Name:        "seed-documents",
		Description: "Create quotation, invoice and receipt chains for a user",
		Run:         internal.SeedDocuments,
	},
}

func main() {
	var (
		listCommands bool
		cmdName      string
		email        string
		password     string
		businessName string
		userID       string
		count        int
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&email, "user-email", "", "Email of the user to create")
	flag.StringVar(&password, "user-password", "", "Password of the user to create")
	flag.StringVar(&businessName, "business-name", "", "Business name printed on documents")
	flag.StringVar(&userID, "user-id", "", "Owner of seeded documents")
	flag.IntVar(&count, "count", 1, "Number of document chains to seed")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	if email != "" {
		os.Setenv("USER_EMAIL", email)
	}
	if password != "" {
		os.Setenv("USER_PASSWORD", password)
	}
	if businessName != "" {
		os.Setenv("BUSINESS_NAME", businessName)
	}
	if userID != "" {
		os.Setenv("USER_ID", userID)
	}
	os.Setenv("SEED_COUNT", fmt.Sprint(count))

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Command %s failed: %v", cmdName, err)
			}
			log.Printf("Command %s completed successfully", cmdName)
			return
		}
	}

	log.Fatalf("Unknown command: %s", cmdName)
}
