package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mwarade/go-assistant/internal/assistant"
	"github.com/mwarade/go-assistant/internal/config"
	"github.com/mwarade/go-assistant/internal/gcal"
	"github.com/mwarade/go-assistant/internal/gmail"
	"github.com/mwarade/go-assistant/internal/llm"
	"github.com/mwarade/go-assistant/internal/notify"
	"github.com/mwarade/go-assistant/internal/timeutil"
)

func main() {
	cfg := config.LoadFromEnv()

	loc, fellBack := timeutil.ResolveLocation(cfg.Timezone)
	if fellBack && cfg.Timezone != "" {
		fmt.Printf("Warning: unknown timezone %q, using UTC\n", cfg.Timezone)
	}

	completer := initLLM(cfg)
	gcalClient := initCalendar(cfg)
	emailSender := initEmailSender(cfg, gcalClient)

	router := assistant.NewRouter(completer)
	resolver := assistant.NewResolver(completer, loc)
	executor := assistant.NewExecutor(assistant.ExecutorConfig{
		Resolver:   resolver,
		Calendar:   calendarOrNil(gcalClient),
		Email:      emailSender,
		LLM:        completer,
		CalendarID: cfg.CalendarID,
		Timezone:   cfg.Timezone,
		Location:   loc,
		Signature:  cfg.Signature,
	})
	workflow := assistant.NewWorkflow(router, executor)

	ctx := context.Background()

	// One-shot mode: the query is passed as arguments.
	if len(os.Args) > 1 {
		fmt.Println(workflow.Run(ctx, strings.Join(os.Args[1:], " ")))
		return
	}

	runInteractive(ctx, workflow)
}

func runInteractive(ctx context.Context, workflow *assistant.Workflow) {
	fmt.Println("Personal assistant ready. Type 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter your request: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "quit") || strings.EqualFold(query, "exit") {
			break
		}
		fmt.Println(workflow.Run(ctx, query))
		fmt.Println()
	}
}

func initLLM(cfg *config.Config) assistant.Completer {
	if cfg.GroqAPIKey == "" {
		fmt.Println("Warning: GROQ_API_KEY not set, falling back to keyword heuristics")
		return nil
	}
	groq, err := llm.NewGroq(cfg.GroqAPIKey, cfg.GroqModel)
	if err != nil {
		fmt.Printf("Warning: failed to configure LLM client: %v\n", err)
		return nil
	}
	fmt.Printf("LLM client configured (model %s)\n", cfg.GroqModel)
	return groq
}

func initCalendar(cfg *config.Config) *gcal.Client {
	client, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fmt.Printf("Warning: failed to create Google Calendar client: %v\n", err)
		return nil
	}
	if !client.IsAuthenticated() {
		fmt.Println("Warning: Google Calendar not authenticated, calendar actions disabled")
		return nil
	}
	fmt.Println("Google Calendar client initialized")
	return client
}

// initEmailSender prefers Gmail on the calendar's OAuth credentials and
// falls back to Resend when Gmail is unavailable.
func initEmailSender(cfg *config.Config, gcalClient *gcal.Client) assistant.EmailSender {
	if gcalClient != nil {
		oauthConfig := gcalClient.GetOAuthConfig()
		oauthToken := gcalClient.GetToken()
		if oauthConfig != nil && oauthToken != nil {
			gmailClient, err := gmail.NewClient(oauthConfig, oauthToken)
			if err == nil {
				fmt.Println("Gmail client initialized")
				return gmailClient
			}
			fmt.Printf("Warning: failed to create Gmail client: %v\n", err)
		}
	}

	if sender := notify.NewResendSender(cfg.ResendAPIKey, cfg.ResendFrom); sender != nil {
		fmt.Println("Email sending configured (Resend)")
		return sender
	}

	fmt.Println("Warning: no email transport configured, email actions disabled")
	return nil
}

// calendarOrNil avoids handing the executor a typed nil interface.
func calendarOrNil(client *gcal.Client) assistant.Calendar {
	if client == nil {
		return nil
	}
	return client
}
