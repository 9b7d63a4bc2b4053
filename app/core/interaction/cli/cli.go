package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"papertrack/app/core/assistant"
	"papertrack/app/core/project"
	"papertrack/app/pkg/logger"
)

// Channel is an interactive stdin chat loop sharing the HTTP chat cycle.
type Channel struct {
	store     *project.Store
	assistant *assistant.Assistant
}

func NewChannel(store *project.Store, asst *assistant.Assistant) *Channel {
	return &Channel{store: store, assistant: asst}
}

func (c *Channel) Start(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(">> papertrack CLI started. Type 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			fmt.Print("> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			if text == "exit" || text == "quit" {
				fmt.Println("Exiting CLI loop...")
				return nil
			}
			c.handle(ctx, text)
		}
	}
}

func (c *Channel) handle(ctx context.Context, text string) {
	st, err := c.store.Load()
	if err != nil {
		fmt.Printf("[papertrack] failed to load project data: %v\n", err)
		return
	}

	result := c.assistant.Converse(ctx, st, text, time.Now())
	if !result.Err {
		if err := c.store.Save(st); err != nil {
			logger.Error("cli: failed to save project data: %v", err)
		}
	}

	fmt.Printf("[papertrack]: %s\n", result.Response)
	for _, u := range result.Updates {
		if u.Applied {
			fmt.Printf("  * applied %s %s\n", u.Action, u.TaskID)
		} else {
			fmt.Printf("  * skipped %s %s: %s\n", u.Action, u.TaskID, u.SkipReason)
		}
	}
}
